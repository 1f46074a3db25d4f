// Package receipttext renders a receipt into the fixed-layout plain-text
// document used for printing. The layout is a compatibility contract: line
// content, rules and footer must not change.
package receipttext

import (
	"fmt"
	"strings"
	"time"

	"github.com/akozlenko/kasa-api/internal/domain/entity"
	"github.com/akozlenko/kasa-api/pkg/money"
	"github.com/shopspring/decimal"
)

// DefaultShopName is the header line printed when no shop name is configured.
const DefaultShopName = "ФОП Джонсонок Борис"

const (
	headerRule  = "======================="
	sectionRule = "-----------------------"
)

// Render produces the printable document for a receipt. Line totals and the
// grand total are recomputed from each product's current price; the change
// line is floored at zero. The timestamp printed is now, not the receipt's
// stored creation time.
func Render(r *entity.Receipt, shopName string, now time.Time) string {
	if shopName == "" {
		shopName = DefaultShopName
	}

	var b strings.Builder
	b.WriteString(shopName)
	b.WriteByte('\n')
	b.WriteString(headerRule)
	b.WriteByte('\n')

	total := decimal.Zero
	for _, item := range r.Items {
		lineTotal := money.LineTotal(item.Product.Price, item.Quantity)
		total = total.Add(lineTotal)
		fmt.Fprintf(&b, "%s %s x %s %s\n",
			item.Product.Name,
			item.Quantity.String(),
			money.Format(item.Product.Price),
			money.Format(lineTotal),
		)
	}

	b.WriteString(sectionRule)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "СУМА %s\n", money.Format(total))
	fmt.Fprintf(&b, "Картка %s\n", money.Format(r.PaymentAmount))
	fmt.Fprintf(&b, "Решта %s\n", money.Format(money.ClampZero(money.Change(r.PaymentAmount, total))))
	b.WriteString(headerRule)
	b.WriteByte('\n')
	b.WriteString(now.Format("02.01.2006 15:04"))
	b.WriteByte('\n')
	b.WriteString("Дякуємо за покупку!")

	return b.String()
}
