package entities

import "time"

// Category representa a categoria de um post
type Category string

const (
	CategoryTech        Category = "Tech"
	CategoryDevelopment Category = "Development"
	CategoryTrends      Category = "Trends"
)

// IsValid verifica se a categoria é conhecida
func (c Category) IsValid() bool {
	switch c {
	case CategoryTech, CategoryDevelopment, CategoryTrends:
		return true
	}
	return false
}

// PostStatus representa o estado de publicação de um post
type PostStatus string

const (
	StatusPosted PostStatus = "posted"
	StatusDraft  PostStatus = "draft"
)

// IsValid verifica se o status é conhecido
func (s PostStatus) IsValid() bool {
	return s == StatusPosted || s == StatusDraft
}

// MediaType representa o tipo de mídia anexada a um post
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
)

// Media descreve a mídia opcional de um post
type Media struct {
	Type MediaType
	URL  string
}

// Post representa um post do blog
// O autor é imutável após a criação; os contadores de likes e comentários
// só crescem, uma unidade por chamada.
type Post struct {
	ID        uint
	Title     string
	Body      string
	Category  Category
	Status    PostStatus
	Media     *Media
	AuthorID  uint
	Author    *User
	Likes     int
	Comments  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAuthoredBy verifica se o post pertence ao usuário informado
func (p *Post) IsAuthoredBy(userID uint) bool {
	return p.AuthorID == userID
}
