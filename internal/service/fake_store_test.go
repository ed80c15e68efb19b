package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db/sqlc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type cartKey struct {
	memberID int64
	isbn     string
}

type fakeState struct {
	members     map[int64]sqlc.Member
	books       map[string]sqlc.Book
	cart        map[cartKey]int32
	orders      map[int64]sqlc.Order
	orderLines  map[int64][]sqlc.OrderLine
	nextMember  int64
	nextOrderID int64
}

func (s fakeState) clone() fakeState {
	c := fakeState{
		members:     make(map[int64]sqlc.Member, len(s.members)),
		books:       make(map[string]sqlc.Book, len(s.books)),
		cart:        make(map[cartKey]int32, len(s.cart)),
		orders:      make(map[int64]sqlc.Order, len(s.orders)),
		orderLines:  make(map[int64][]sqlc.OrderLine, len(s.orderLines)),
		nextMember:  s.nextMember,
		nextOrderID: s.nextOrderID,
	}
	for k, v := range s.members {
		c.members[k] = v
	}
	for k, v := range s.books {
		c.books[k] = v
	}
	for k, v := range s.cart {
		c.cart[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.orderLines {
		c.orderLines[k] = append([]sqlc.OrderLine(nil), v...)
	}
	return c
}

// fakeStore 記憶體版 IStore, ExecTx 失敗時還原到交易前的狀態
type fakeStore struct {
	mu    sync.Mutex
	state fakeState
	// 指定 query 回傳錯誤, key 為方法名稱
	failOn map[string]error
	txs    int
}

var _ db.IStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		state: fakeState{
			members:    map[int64]sqlc.Member{},
			books:      map[string]sqlc.Book{},
			cart:       map[cartKey]int32{},
			orders:     map[int64]sqlc.Order{},
			orderLines: map[int64][]sqlc.OrderLine{},
		},
		failOn: map[string]error{},
	}
}

func (f *fakeStore) fail(method string) error {
	return f.failOn[method]
}

// fakeTx 在交易中直接操作 store 的狀態, 鎖已由 ExecTx 持有
type fakeTx struct {
	*fakeStore
}

func (f *fakeStore) ExecTx(ctx context.Context, fn func(sqlc.Querier) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txs++

	snapshot := f.state.clone()
	if err := fn(&fakeTx{f}); err != nil {
		f.state = snapshot
		return err
	}
	return nil
}

func (f *fakeStore) ExecMultiTx(ctx context.Context, fns []func(sqlc.Querier) error) error {
	return f.ExecTx(ctx, func(q sqlc.Querier) error {
		for _, fn := range fns {
			if err := fn(q); err != nil {
				return err
			}
		}
		return nil
	})
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.fail("Ping")
}

// 非交易呼叫: 取鎖後委派給 fakeTx
func (f *fakeStore) locked() (*fakeTx, func()) {
	f.mu.Lock()
	return &fakeTx{f}, f.mu.Unlock
}

func (f *fakeStore) AddCartItem(ctx context.Context, arg sqlc.AddCartItemParams) (int32, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.AddCartItem(ctx, arg)
}

func (f *fakeStore) ClearCart(ctx context.Context, memberID int64) (int64, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.ClearCart(ctx, memberID)
}

func (f *fakeStore) CreateMember(ctx context.Context, arg sqlc.CreateMemberParams) (sqlc.Member, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.CreateMember(ctx, arg)
}

func (f *fakeStore) CreateOrder(ctx context.Context, arg sqlc.CreateOrderParams) (sqlc.Order, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.CreateOrder(ctx, arg)
}

func (f *fakeStore) CreateOrderLine(ctx context.Context, arg sqlc.CreateOrderLineParams) (sqlc.OrderLine, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.CreateOrderLine(ctx, arg)
}

func (f *fakeStore) GetBook(ctx context.Context, isbn string) (sqlc.Book, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.GetBook(ctx, isbn)
}

func (f *fakeStore) GetMemberByEmail(ctx context.Context, email string) (sqlc.Member, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.GetMemberByEmail(ctx, email)
}

func (f *fakeStore) GetMemberByID(ctx context.Context, id int64) (sqlc.Member, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.GetMemberByID(ctx, id)
}

func (f *fakeStore) GetMemberForUpdate(ctx context.Context, id int64) (sqlc.Member, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.GetMemberForUpdate(ctx, id)
}

func (f *fakeStore) GetOrderForMember(ctx context.Context, arg sqlc.GetOrderForMemberParams) (sqlc.Order, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.GetOrderForMember(ctx, arg)
}

func (f *fakeStore) ListCartLines(ctx context.Context, memberID int64) ([]sqlc.ListCartLinesRow, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.ListCartLines(ctx, memberID)
}

func (f *fakeStore) ListOrderLines(ctx context.Context, orderID int64) ([]sqlc.ListOrderLinesRow, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.ListOrderLines(ctx, orderID)
}

func (f *fakeStore) ListOrdersByMember(ctx context.Context, memberID int64) ([]sqlc.Order, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.ListOrdersByMember(ctx, memberID)
}

func (f *fakeStore) ListSubjects(ctx context.Context) ([]string, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.ListSubjects(ctx)
}

func (f *fakeStore) LockCartLines(ctx context.Context, memberID int64) ([]sqlc.LockCartLinesRow, error) {
	tx, unlock := f.locked()
	defer unlock()
	return tx.LockCartLines(ctx, memberID)
}

func (f *fakeStore) UpsertBook(ctx context.Context, arg sqlc.UpsertBookParams) error {
	tx, unlock := f.locked()
	defer unlock()
	return tx.UpsertBook(ctx, arg)
}

var (
	errFKViolation     = &pgconn.PgError{Code: "23503"}
	errUniqueViolation = &pgconn.PgError{Code: "23505"}
)

func (t *fakeTx) AddCartItem(ctx context.Context, arg sqlc.AddCartItemParams) (int32, error) {
	if err := t.fail("AddCartItem"); err != nil {
		return 0, err
	}
	if _, ok := t.state.books[arg.Isbn]; !ok {
		return 0, errFKViolation
	}
	if _, ok := t.state.members[arg.MemberID]; !ok {
		return 0, errFKViolation
	}
	k := cartKey{arg.MemberID, arg.Isbn}
	t.state.cart[k] += arg.Qty
	return t.state.cart[k], nil
}

func (t *fakeTx) ClearCart(ctx context.Context, memberID int64) (int64, error) {
	if err := t.fail("ClearCart"); err != nil {
		return 0, err
	}
	var n int64
	for k := range t.state.cart {
		if k.memberID == memberID {
			delete(t.state.cart, k)
			n++
		}
	}
	return n, nil
}

func (t *fakeTx) CreateMember(ctx context.Context, arg sqlc.CreateMemberParams) (sqlc.Member, error) {
	if err := t.fail("CreateMember"); err != nil {
		return sqlc.Member{}, err
	}
	for _, m := range t.state.members {
		if m.Email == arg.Email {
			return sqlc.Member{}, errUniqueViolation
		}
	}
	t.state.nextMember++
	m := sqlc.Member{
		ID:           t.state.nextMember,
		Fname:        arg.Fname,
		Lname:        arg.Lname,
		Address:      arg.Address,
		City:         arg.City,
		Zip:          arg.Zip,
		Phone:        arg.Phone,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	t.state.members[m.ID] = m
	return m, nil
}

func (t *fakeTx) CreateOrder(ctx context.Context, arg sqlc.CreateOrderParams) (sqlc.Order, error) {
	if err := t.fail("CreateOrder"); err != nil {
		return sqlc.Order{}, err
	}
	t.state.nextOrderID++
	o := sqlc.Order{
		ID:          t.state.nextOrderID,
		MemberID:    arg.MemberID,
		CreatedAt:   arg.CreatedAt,
		ShipAddress: arg.ShipAddress,
		ShipCity:    arg.ShipCity,
		ShipZip:     arg.ShipZip,
	}
	t.state.orders[o.ID] = o
	return o, nil
}

func (t *fakeTx) CreateOrderLine(ctx context.Context, arg sqlc.CreateOrderLineParams) (sqlc.OrderLine, error) {
	if err := t.fail("CreateOrderLine"); err != nil {
		return sqlc.OrderLine{}, err
	}
	line := sqlc.OrderLine{OrderID: arg.OrderID, Isbn: arg.Isbn, Qty: arg.Qty, Amount: arg.Amount}
	t.state.orderLines[arg.OrderID] = append(t.state.orderLines[arg.OrderID], line)
	return line, nil
}

func (t *fakeTx) GetBook(ctx context.Context, isbn string) (sqlc.Book, error) {
	b, ok := t.state.books[isbn]
	if !ok {
		return sqlc.Book{}, pgx.ErrNoRows
	}
	return b, nil
}

func (t *fakeTx) GetMemberByEmail(ctx context.Context, email string) (sqlc.Member, error) {
	if err := t.fail("GetMemberByEmail"); err != nil {
		return sqlc.Member{}, err
	}
	for _, m := range t.state.members {
		if m.Email == email {
			return m, nil
		}
	}
	return sqlc.Member{}, pgx.ErrNoRows
}

func (t *fakeTx) GetMemberByID(ctx context.Context, id int64) (sqlc.Member, error) {
	m, ok := t.state.members[id]
	if !ok {
		return sqlc.Member{}, pgx.ErrNoRows
	}
	return m, nil
}

func (t *fakeTx) GetMemberForUpdate(ctx context.Context, id int64) (sqlc.Member, error) {
	if err := t.fail("GetMemberForUpdate"); err != nil {
		return sqlc.Member{}, err
	}
	return t.GetMemberByID(ctx, id)
}

func (t *fakeTx) GetOrderForMember(ctx context.Context, arg sqlc.GetOrderForMemberParams) (sqlc.Order, error) {
	o, ok := t.state.orders[arg.ID]
	if !ok || o.MemberID != arg.MemberID {
		return sqlc.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (t *fakeTx) cartRows(memberID int64) []sqlc.ListCartLinesRow {
	var rows []sqlc.ListCartLinesRow
	for k, qty := range t.state.cart {
		if k.memberID != memberID {
			continue
		}
		b := t.state.books[k.isbn]
		rows = append(rows, sqlc.ListCartLinesRow{Isbn: b.Isbn, Title: b.Title, Author: b.Author, Price: b.Price, Qty: qty})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Isbn < rows[j].Isbn })
	return rows
}

func (t *fakeTx) ListCartLines(ctx context.Context, memberID int64) ([]sqlc.ListCartLinesRow, error) {
	if err := t.fail("ListCartLines"); err != nil {
		return nil, err
	}
	return t.cartRows(memberID), nil
}

func (t *fakeTx) LockCartLines(ctx context.Context, memberID int64) ([]sqlc.LockCartLinesRow, error) {
	if err := t.fail("LockCartLines"); err != nil {
		return nil, err
	}
	var rows []sqlc.LockCartLinesRow
	for _, r := range t.cartRows(memberID) {
		rows = append(rows, sqlc.LockCartLinesRow(r))
	}
	return rows, nil
}

func (t *fakeTx) ListOrderLines(ctx context.Context, orderID int64) ([]sqlc.ListOrderLinesRow, error) {
	var rows []sqlc.ListOrderLinesRow
	for _, l := range t.state.orderLines[orderID] {
		rows = append(rows, sqlc.ListOrderLinesRow{
			OrderID: l.OrderID,
			Isbn:    l.Isbn,
			Title:   t.state.books[l.Isbn].Title,
			Qty:     l.Qty,
			Amount:  l.Amount,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Isbn < rows[j].Isbn })
	return rows, nil
}

func (t *fakeTx) ListOrdersByMember(ctx context.Context, memberID int64) ([]sqlc.Order, error) {
	var orders []sqlc.Order
	for _, o := range t.state.orders {
		if o.MemberID == memberID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

func (t *fakeTx) ListSubjects(ctx context.Context) ([]string, error) {
	if err := t.fail("ListSubjects"); err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var subjects []string
	for _, b := range t.state.books {
		if _, ok := seen[b.Subject]; !ok {
			seen[b.Subject] = struct{}{}
			subjects = append(subjects, b.Subject)
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}

func (t *fakeTx) UpsertBook(ctx context.Context, arg sqlc.UpsertBookParams) error {
	if err := t.fail("UpsertBook"); err != nil {
		return err
	}
	if strings.TrimSpace(arg.Isbn) == "" {
		return &pgconn.PgError{Code: "23514"}
	}
	t.state.books[arg.Isbn] = sqlc.Book(arg)
	return nil
}

func (f *fakeStore) addBook(isbn, title, author, price, subject string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.books[isbn] = sqlc.Book{
		Isbn:    isbn,
		Title:   title,
		Author:  author,
		Price:   decimal.RequireFromString(price),
		Subject: subject,
	}
}

func (f *fakeStore) addMember(fname, lname string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.nextMember++
	id := f.state.nextMember
	f.state.members[id] = sqlc.Member{
		ID:      id,
		Fname:   fname,
		Lname:   lname,
		Address: "Storgatan 1",
		City:    "Lund",
		Zip:     "22100",
		Email:   fmt.Sprintf("member%d@example.com", id),
	}
	return id
}

func (f *fakeStore) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.state.orders)
}

func (f *fakeStore) cartQty(memberID int64, isbn string) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.cart[cartKey{memberID, isbn}]
}
