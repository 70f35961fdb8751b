package model

import "time"

// Itinerary is the aggregate root for Days and their Activities.
type Itinerary struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	AuthorID    string         `json:"authorId" gorm:"size:255;index;not null"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	StartDate   Date           `json:"startDate" gorm:"type:date;not null"`
	EndDate     Date           `json:"endDate" gorm:"type:date;not null"`
	ImageURLs   StringList     `json:"imageUrls" gorm:"column:image_urls;type:jsonb;not null;default:'[]'"`
	MapData     JSON           `json:"mapData" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Days        []ItineraryDay `json:"days" gorm:"foreignKey:ItineraryID;constraint:OnDelete:CASCADE"`
}

func (it *Itinerary) OwnedBy(email string) bool {
	return it.AuthorID == email
}

type ItineraryDay struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	ItineraryID uint                `json:"itineraryId" gorm:"index;not null"`
	DayNumber   int                 `json:"dayNumber" gorm:"not null"`
	Date        Date                `json:"date" gorm:"type:date"`
	Activities  []ItineraryActivity `json:"activities" gorm:"foreignKey:ItineraryDayID;constraint:OnDelete:CASCADE"`
}

type ItineraryActivity struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ItineraryDayID uint   `json:"itineraryDayId" gorm:"index;not null"`
	Time           string `json:"time" gorm:"size:255;not null;default:''"`
	Description    string `json:"description" gorm:"type:text;not null;default:''"`
	Location       string `json:"location" gorm:"size:255;not null;default:''"`
	Coordinates    JSON   `json:"coordinates" gorm:"type:jsonb"`
}
