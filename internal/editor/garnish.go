package editor

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/barmanager/internal/api"
)

type GarnishDraft struct {
	ID          string
	Name        string
	Description string
	Price       *float64
	Image       string
}

func NewGarnishDraft() *GarnishDraft {
	return &GarnishDraft{}
}

func GarnishFromWire(garnish api.Garnish) *GarnishDraft {
	price := garnish.Price
	return &GarnishDraft{
		ID:          garnish.Id,
		Name:        garnish.Name,
		Description: nilToBlank(garnish.Description),
		Price:       &price,
		Image:       nilToBlank(garnish.Image),
	}
}

func (d *GarnishDraft) SetPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	d.Price = &price
	return nil
}

func (d *GarnishDraft) AttachImage(filename string, content []byte) error {
	image, err := EncodeImage(filename, content)
	if err != nil {
		return err
	}
	d.Image = image
	return nil
}

type GarnishErrorReport struct {
	Name  string `json:"name,omitempty"`
	Price string `json:"price,omitempty"`
}

func (r GarnishErrorReport) Valid() bool {
	return r == GarnishErrorReport{}
}

func (r GarnishErrorReport) Fields() map[string]string {
	fields := make(map[string]string)
	if r.Name != "" {
		fields["name"] = r.Name
	}
	if r.Price != "" {
		fields["price"] = r.Price
	}
	return fields
}

type GarnishValidationError struct {
	Report GarnishErrorReport
}

func (ve *GarnishValidationError) Error() string {
	return fmt.Sprintf("garnish is invalid: %d field(s) failed", len(ve.Report.Fields()))
}

func ValidateGarnish(d *GarnishDraft) GarnishErrorReport {
	var report GarnishErrorReport
	if strings.TrimSpace(d.Name) == "" {
		report.Name = MsgRequired
	}
	switch {
	case d.Price == nil:
		report.Price = MsgRequired
	case *d.Price < 0:
		report.Price = MsgNegative
	}
	return report
}

func BuildGarnishPayload(d *GarnishDraft) api.GarnishInput {
	var price *float64
	if d.Price != nil {
		price = aws.Float64(*d.Price)
	}
	return api.GarnishInput{
		Id:          blankToNil(d.ID),
		Name:        aws.String(strings.TrimSpace(d.Name)),
		Description: blankToNil(d.Description),
		Price:       price,
		Image:       blankToNil(d.Image),
	}
}
