package message

import (
	"fmt"
	"strings"

	"github.com/example/hamper-shop/internal/catalog"
	"github.com/example/hamper-shop/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// DefaultBrand names the shop when no brand is configured.
const DefaultBrand = "Happy Haven"

// ContactForm is the free-text enquiry from the contact section.
type ContactForm struct {
	Name     string
	Email    string
	Phone    string
	Occasion string
	Message  string
}

// BuildOrderSummary renders the cart for the ordering chat. Missing customer
// fields render empty and an empty cart renders a zero total.
func BuildOrderSummary(brand string, items []cart.CartItem, customer cart.CustomerDetails) string {
	var b strings.Builder

	if strings.TrimSpace(brand) == "" {
		brand = DefaultBrand
	}
	fmt.Fprintf(&b, "🎁 *%s ORDER*\n\n", strings.ToUpper(strings.TrimSpace(brand)))

	b.WriteString("👤 *Customer Details:*\n")
	fmt.Fprintf(&b, "• Name: %s\n", customer.Name)
	fmt.Fprintf(&b, "• Phone: %s\n", customer.Phone)
	fmt.Fprintf(&b, "• Email: %s\n", customer.Email)
	fmt.Fprintf(&b, "• Address: %s\n\n", customer.Address)

	b.WriteString("📦 *Order Summary:*\n")
	if len(items) == 0 {
		b.WriteString("No items\n")
	}

	total := decimal.Zero
	for i, item := range items {
		total = total.Add(item.LineTotal)
		writeItem(&b, i+1, item)
	}

	fmt.Fprintf(&b, "\n💰 *Total Amount:* %s\n\n", FormatRupees(total))
	b.WriteString("Please confirm availability and provide delivery details.")
	return b.String()
}

func writeItem(b *strings.Builder, n int, item cart.CartItem) {
	fmt.Fprintf(b, "\n*Item %d:*\n", n)
	fmt.Fprintf(b, "• Name: %s\n", item.Name)
	fmt.Fprintf(b, "• Type: %s\n", typeLabel(item.Kind))
	fmt.Fprintf(b, "• Quantity: %d\n", item.Quantity)
	if item.Quantity > 1 {
		fmt.Fprintf(b, "• Unit Price: %s\n", FormatRupees(item.UnitPrice))
	}
	fmt.Fprintf(b, "• Price: %s\n", FormatRupees(item.LineTotal))

	switch {
	case item.Kind == cart.KindCustom && item.Custom != nil:
		fmt.Fprintf(b, "• Occasion: %s\n", item.Custom.Occasion)
		fmt.Fprintf(b, "• Vibe: %s\n", item.Custom.Vibe)
		fmt.Fprintf(b, "• Packaging: %s\n", item.Custom.Packaging)
		fmt.Fprintf(b, "• Contents: %s\n", strings.Join(item.Custom.Contents, ", "))
	case item.Kind == cart.KindPrebuilt && item.Prebuilt != nil:
		fmt.Fprintf(b, "• Category: %s\n", item.Prebuilt.Category)
		fmt.Fprintf(b, "• Contents: %s\n", strings.Join(item.Prebuilt.Contents, ", "))
		if item.Prebuilt.Packaging != "" {
			fmt.Fprintf(b, "• Packaging: %s\n", item.Prebuilt.Packaging)
		}
	}
}

func typeLabel(k cart.Kind) string {
	switch k {
	case cart.KindCustom:
		return "Custom Hamper"
	case cart.KindPrebuilt:
		return "Prebuilt Hamper"
	default:
		return string(k)
	}
}

// BuildProductOrder is the direct "order now" message for one prebuilt hamper.
func BuildProductOrder(p catalog.Product) string {
	var b strings.Builder

	b.WriteString("🎁 *ORDER SUMMARY*\n\n")
	fmt.Fprintf(&b, "📦 *Product:* %s\n", p.Name)
	fmt.Fprintf(&b, "💰 *Price:* %s\n", p.Price)
	fmt.Fprintf(&b, "🏷️ *Category:* %s\n\n", p.Category)

	b.WriteString("📋 *Complete Contents:*\n")
	for i, item := range p.Contents {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}

	fmt.Fprintf(&b, "\n📦 *Packaging:* %s\n", p.Packaging)
	fmt.Fprintf(&b, "🚚 *Delivery:* %s\n\n", p.DeliveryInfo)
	fmt.Fprintf(&b, "🎯 *Perfect for:* %s\n\n", strings.Join(p.Occasions, ", "))

	b.WriteString("✨ *Special Features:*\n")
	for _, f := range p.Features {
		fmt.Fprintf(&b, "• %s\n", f)
	}

	b.WriteString("\nPlease confirm this order and provide delivery details.")
	return b.String()
}

func BuildProductEnquiry(p catalog.Product) string {
	return fmt.Sprintf("Hi! I'm interested in ordering the %s (%s). Could you provide more details?", p.Name, p.Price)
}

func BuildContactMessage(f ContactForm) string {
	return fmt.Sprintf(`Hi! I'm interested in your gift hampers.

Name: %s
Email: %s
Phone: %s
Occasion: %s

Message: %s`, f.Name, f.Email, f.Phone, f.Occasion, f.Message)
}
