package model

// Blog — запись блога.
type Blog struct {
	BlogID           int64  `json:"blogId,omitempty"`
	Topic            string `json:"topic"`
	Date             string `json:"date"`
	Division         string `json:"division"`
	ImageURL         string `json:"imageUrl"`
	ShortDescription string `json:"shortDescription"`
	Paragraph        string `json:"paragraph"`
	Slug             string `json:"slug"`
	Published        bool   `json:"published"`
	ViewCount        int64  `json:"viewCount,omitempty"`
	DisplayOrder     int    `json:"displayOrder"`
	CreatedAt        string `json:"createdAt,omitempty"`
	UpdatedAt        string `json:"updatedAt,omitempty"`
}

// BlogDivisions — допустимые подразделения блога.
var BlogDivisions = []string{"CentralAC", "Elevator", "Fire", "Generator", "Solar", "ELV"}

// News — новость.
type News struct {
	ID           int64  `json:"id,omitempty"`
	Title        string `json:"title"`
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Description  string `json:"description"`
	Content      string `json:"content"`
	Category     string `json:"category"`
	DisplayOrder int    `json:"displayOrder"`
	IsFeatured   bool   `json:"isFeatured"`
	IsPublished  bool   `json:"isPublished"`
	ExpireDate   string `json:"expireDate"`
	Author       string `json:"author"`
	ViewCount    int64  `json:"viewCount,omitempty"`
}

// NewsCategories — допустимые категории новостей.
var NewsCategories = []string{
	"CORPORATE", "BUSINESS", "PUBLIC", "IMPACT", "TECHNOLOGY", "EVENTS", "ANNOUNCEMENTS",
}

// GalleryItem — элемент галереи.
type GalleryItem struct {
	ID           int64  `json:"id,omitempty"`
	Title        string `json:"title"`
	ImageURL     string `json:"imageUrl"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	DisplayOrder int    `json:"displayOrder"`
}

// ReorderRequest — тело запроса изменения порядка элементов.
type ReorderRequest struct {
	ItemIDs []int64 `json:"itemIds"`
}
