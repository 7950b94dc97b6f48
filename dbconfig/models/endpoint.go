package models

import "time"

type Endpoint struct {
	ID        int64
	ChainID   string
	URL       string
	Provider  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
