package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gallery holds the images for one event. One document per event;
// new uploads append to Images.
type Gallery struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Event      primitive.ObjectID `bson:"event" json:"event"`
	Images     []GalleryImage     `bson:"images" json:"images"`
	UploadedBy primitive.ObjectID `bson:"uploadedBy" json:"uploadedBy"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GalleryImage is one uploaded image with an optional caption.
type GalleryImage struct {
	URL     string `bson:"url" json:"url"`
	Caption string `bson:"caption,omitempty" json:"caption,omitempty"`
}
