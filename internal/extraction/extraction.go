// Package extraction defines the input model for the transformation
// pipeline: the loosely structured shipment fields pulled off freight
// paperwork by the upstream extraction step. Every field is optional and
// absence is never an error; the pipeline degrades field by field.
package extraction

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ShipperSection is one pickup line-item.
type ShipperSection struct {
	ShipFromCompany    string `json:"ship_from_company,omitempty"`
	ShipFromAddress    string `json:"ship_from_address,omitempty"`
	PickupNumber       string `json:"pickup_number,omitempty"`
	PickupInstructions string `json:"pickup_instructions,omitempty"`
	PickupApptStart    string `json:"pickup_appointment_start_datetime,omitempty"`
	PickupApptEnd      string `json:"pickup_appointment_end_datetime,omitempty"`
	PickupPhoneNumber  string `json:"pickup_phone_number,omitempty"`
}

// ReceiverSection is one delivery line-item.
type ReceiverSection struct {
	ReceiverCompany      string `json:"receiver_company,omitempty"`
	ReceiverAddress      string `json:"receiver_address,omitempty"`
	DeliveryNumber       string `json:"receiver_delivery_number,omitempty"`
	ReceiverInstructions string `json:"receiver_instructions,omitempty"`
	ApptStart            string `json:"receiver_appointment_start_datetime,omitempty"`
	ApptEnd              string `json:"receiver_appointment_end_datetime,omitempty"`
	ReceiverPhoneNumber  string `json:"receiver_phone_number,omitempty"`
}

// Document is a complete extraction record for one shipment.
type Document struct {
	EquipmentType             string            `json:"equipment_type,omitempty"`
	ReferenceNumber           string            `json:"reference_number,omitempty"`
	BookingConfirmationNumber string            `json:"booking_confirmation_number,omitempty"`
	TotalRate                 string            `json:"total_rate,omitempty"`
	FreightRate               string            `json:"freight_rate,omitempty"`
	AdditionalRate            string            `json:"additional_rate,omitempty"`
	ShipperSection            []ShipperSection  `json:"shipper_section,omitempty"`
	ReceiverSection           []ReceiverSection `json:"receiver_section,omitempty"`
	CustomerName              string            `json:"customer_name,omitempty"`
	EmailDomain               string            `json:"email_domain,omitempty"`
	CustomerAddress           string            `json:"customer_address,omitempty"`
	TemperaturePresent        bool              `json:"temperature_present,omitempty"`
	TemperatureLow            *float64          `json:"temperature_low,omitempty"`
	TemperatureHigh           *float64          `json:"temperature_high,omitempty"`
}

// Equipment returns the equipment type, defaulting to "Van" when absent.
func (d *Document) Equipment() string {
	if d.EquipmentType == "" {
		return "Van"
	}
	return d.EquipmentType
}

// OriginAddress returns the first shipper address, or empty when there are
// no shipper line-items.
func (d *Document) OriginAddress() string {
	if len(d.ShipperSection) == 0 {
		return ""
	}
	return d.ShipperSection[0].ShipFromAddress
}

// DestinationAddress returns the first receiver address, or empty when
// there are no receiver line-items.
func (d *Document) DestinationAddress() string {
	if len(d.ReceiverSection) == 0 {
		return ""
	}
	return d.ReceiverSection[0].ReceiverAddress
}

// Read decodes an extraction document from r.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode extraction document: %w", err)
	}
	return &doc, nil
}

// Load reads an extraction document from a JSON file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open extraction document: %w", err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
