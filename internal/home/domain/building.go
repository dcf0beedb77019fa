package domain

import "time"

type Building struct {
	ID        int64
	Name      string
	Address   string
	CreatedAt time.Time
}
