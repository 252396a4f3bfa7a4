package model

// Owner is the account that published a service.
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CategoryRef names the category of a service.
type CategoryRef struct {
	Name string `json:"name"`
}

// DeleteRequest is a service whose owner asked for it to be removed.
type DeleteRequest struct {
	ServiceID    string      `json:"_id"`
	Title        string      `json:"title"`
	Price        Number      `json:"price"`
	Currency     string      `json:"currency"`
	IsFree       bool        `json:"isFree"`
	LocationName string      `json:"location_name"`
	RequestedAt  Timestamp   `json:"deleteRequestedAt"`
	Owner        Owner       `json:"owner"`
	Category     CategoryRef `json:"category"`
}
