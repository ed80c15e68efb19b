package dto

type BookDTO struct {
	ISBN    string `json:"isbn"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Price   string `json:"price"`
	Subject string `json:"subject"`
}

type BookPageDTO struct {
	Books        []BookDTO `json:"books"`
	Total        int64     `json:"total"`
	Page         int       `json:"page"`
	ItemsPerPage int       `json:"items_per_page"`
	TotalPages   int       `json:"total_pages"`
}
