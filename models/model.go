package models

// Model describes a model the backend can chat with.
type Model struct {
	ID      string `json:"id" yaml:"id"`
	Object  string `json:"object" yaml:"object"`
	Created int64  `json:"created" yaml:"created"`
	OwnedBy string `json:"ownedBy" yaml:"ownedBy"`
}
