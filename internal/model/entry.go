package model

import "time"

// Entry is one dated observation for a metric. Its owner is the metric's user.
type Entry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MetricID  uint      `json:"metric_id" gorm:"not null;index"`
	Value     float64   `json:"value" gorm:"not null"`
	Date      string    `json:"date" gorm:"type:char(10);not null;index"` // YYYY-MM-DD
	Note      *string   `json:"note" gorm:"size:500"`
	CreatedAt time.Time `json:"-"`

	// Relations
	Metric Metric `json:"-" gorm:"foreignKey:MetricID"`
}

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Metric{},
		&Goal{},
		&Entry{},
	}
}
