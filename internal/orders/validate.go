package orders

import (
	"fmt"
	"strings"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/shopspring/decimal"
)

const requiredMsg = "This field is required."

var maxMoney = decimal.RequireFromString("99999999.99")

// validateOrderInput repeats the checks the binding tags express so the
// service is safe to call without the HTTP layer.
func validateOrderInput(in models.OrderInput) error {
	fields := map[string]string{}
	required := map[string]string{
		"first_name":     in.FirstName,
		"last_name":      in.LastName,
		"email":          in.Email,
		"phone":          in.Phone,
		"address":        in.Address,
		"city":           in.City,
		"postal_code":    in.PostalCode,
		"payment_method": in.PaymentMethod,
	}
	for name, v := range required {
		if strings.TrimSpace(v) == "" {
			fields[name] = requiredMsg
		}
	}
	if in.TotalAmount == nil {
		fields["total_amount"] = requiredMsg
	} else {
		checkMoney(fields, "total_amount", *in.TotalAmount)
	}
	if in.DeliveryCharges == nil {
		fields["delivery_charges"] = requiredMsg
	} else {
		checkMoney(fields, "delivery_charges", *in.DeliveryCharges)
	}
	for i, item := range in.Items {
		if item.Quantity < 1 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "Ensure this value is greater than or equal to 1."
		}
		if item.Price == nil {
			fields[fmt.Sprintf("items[%d].price", i)] = requiredMsg
		} else {
			checkMoney(fields, fmt.Sprintf("items[%d].price", i), *item.Price)
		}
	}
	if len(fields) > 0 {
		return apperr.FieldErrors(fields)
	}
	return nil
}

func applyPatch(o *models.Order, p models.OrderPatch) error {
	fields := map[string]string{}
	setText := func(dst *string, v *string, name string) {
		if v == nil {
			return
		}
		if strings.TrimSpace(*v) == "" {
			fields[name] = "This field may not be blank."
			return
		}
		*dst = strings.TrimSpace(*v)
	}
	setText(&o.FirstName, p.FirstName, "first_name")
	setText(&o.LastName, p.LastName, "last_name")
	setText(&o.Email, p.Email, "email")
	setText(&o.Phone, p.Phone, "phone")
	setText(&o.Address, p.Address, "address")
	setText(&o.City, p.City, "city")
	setText(&o.PostalCode, p.PostalCode, "postal_code")
	setText(&o.PaymentMethod, p.PaymentMethod, "payment_method")
	if p.PaymentID != nil {
		o.PaymentID = *p.PaymentID
	}
	if p.TotalAmount != nil {
		checkMoney(fields, "total_amount", *p.TotalAmount)
		o.TotalAmount = *p.TotalAmount
	}
	if p.DeliveryCharges != nil {
		checkMoney(fields, "delivery_charges", *p.DeliveryCharges)
		o.DeliveryCharges = *p.DeliveryCharges
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			fields["status"] = fmt.Sprintf("%q is not a valid choice.", string(*p.Status))
		} else {
			o.Status = *p.Status
		}
	}
	if len(fields) > 0 {
		return apperr.FieldErrors(fields)
	}
	return nil
}

func checkMoney(fields map[string]string, name string, d decimal.Decimal) {
	switch {
	case d.IsNegative():
		fields[name] = "Ensure this value is greater than or equal to 0."
	case d.GreaterThan(maxMoney):
		fields[name] = "Ensure that there are no more than 10 digits in total."
	case !d.Equal(d.Round(2)):
		fields[name] = "Ensure that there are no more than 2 decimal places."
	}
}
