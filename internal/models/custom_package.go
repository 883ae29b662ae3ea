package models

import (
	"time"
)

// CustomPackage is a bespoke decoration request submitted from the package
// builder. All selections are free-text and optional.
type CustomPackage struct {
	ID                  string    `json:"id"`
	ColorPalette        string    `json:"colorPalette"`
	Flowers             string    `json:"flowers"`
	ArchEntrance        string    `json:"archEntrance"`
	Lighting            string    `json:"lighting"`
	TableCenterpieces   string    `json:"tableCenterpieces"`
	BackdropDesign      string    `json:"backdropDesign"`
	FabricDraping       string    `json:"fabricDraping"`
	PhotoBooth          string    `json:"photoBooth"`
	SpecialInstructions string    `json:"specialInstructions"`
	CreatedAt           time.Time `json:"createdAt"`
}

// IsEmpty reports whether no selection was made at all.
func (p *CustomPackage) IsEmpty() bool {
	return p.ColorPalette == "" && p.Flowers == "" && p.ArchEntrance == "" &&
		p.Lighting == "" && p.TableCenterpieces == "" && p.BackdropDesign == "" &&
		p.FabricDraping == "" && p.PhotoBooth == "" && p.SpecialInstructions == ""
}
