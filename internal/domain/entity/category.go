package entity

type Category struct {
	ID    string `json:"id" firestore:"id"`
	Name  string `json:"categoryName" firestore:"categoryName"`
	Icon  string `json:"icon" firestore:"icon"`
	Image string `json:"image" firestore:"image"`
}

const (
	DefaultCategoryIcon  = "shopping-bag"
	DefaultCategoryImage = "https://via.placeholder.com/300x200?text=Category"
)
