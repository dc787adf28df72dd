package models

// Product is a catalog entry. Price is kept as the decimal text the store
// returns so no precision is lost on the way to the client.
type Product struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}
