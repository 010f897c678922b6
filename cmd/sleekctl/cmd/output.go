package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printCategoryTree(w io.Writer, tree []domain.Category) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tLABEL\tLINK\n")
	var walk func(nodes []domain.Category, depth int)
	walk = func(nodes []domain.Category, depth int) {
		for i := range nodes {
			c := &nodes[i]
			tw.writef("%d\t%s%s\t%s\t%s\n", c.ID, strings.Repeat("  ", depth), c.Name, c.Label, c.Link)
			walk(c.Children, depth+1)
		}
	}
	walk(tree, 0)
	return tw.finish()
}

func printShopObjects(w io.Writer, objects map[string]domain.ShopObject) error {
	keys := make([]string, 0, len(objects))
	for k := range objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tCLASS\tAVAILABILITY\tPERMALINK\n")
	for _, k := range keys {
		o := objects[k]
		avail := "-"
		if o.Availability != nil {
			avail = fmt.Sprintf("%s (%d)", o.Availability.Label, o.Availability.Quantity)
		}
		tw.writef("%d\t%s\t%s\t%s\t%s\n", o.ID, truncate(o.Name, 40), o.Class, avail, o.Permalink)
	}
	return tw.finish()
}

func printShopObjectDetail(w io.Writer, o *domain.ShopObject) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", o.ID)
	tw.writef("Name:\t%s\n", o.Name)
	tw.writef("Class:\t%s\n", o.Class)
	tw.writef("Permalink:\t%s\n", o.Permalink)
	tw.writef("Title:\t%s\n", o.Title)
	if o.Availability != nil {
		tw.writef("Availability:\t%s (%d)\n", o.Availability.Label, o.Availability.Quantity)
	}
	tw.writef("Variations:\t%d\n", len(o.Variations))

	names := make([]string, 0, len(o.Attributes))
	for name := range o.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tw.writef("  %s:\t%s\n", name, truncate(o.Attributes[name].Value, 60))
	}
	return tw.finish()
}

func printCart(w io.Writer, cart *domain.Cart) error {
	tw := newTabWriter(w)
	tw.writef("ID\tPRODUCT\tNAME\tQTY\tPRICE\tSUM\n")
	for i := range cart.Contents {
		it := &cart.Contents[i]
		tw.writef("%d\t%d\t%s\t%s\t%s\t%s\n",
			it.ID,
			it.ProductID,
			truncate(it.Name, 40),
			it.Quantity.String(),
			it.Price.StringFixed(2),
			it.SumPrice.StringFixed(2),
		)
	}
	tw.writef("\t\t\t\tDelivery:\t%s\n", cart.DeliveryCosts.Sum.StringFixed(2))
	tw.writef("\t\t\t\tTotal:\t%s\n", cart.Sum.StringFixed(2))
	return tw.finish()
}

func printUser(w io.Writer, u *domain.User) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", u.ID)
	tw.writef("Username:\t%s\n", u.Username)
	tw.writef("Email:\t%s\n", u.Email)
	tw.writef("Name:\t%s %s\n", u.FirstName, u.LastName)
	tw.writef("Address:\t%s %s, %s %s, %s\n", u.Street, u.Number, u.Zip, u.City, u.Country)
	return tw.finish()
}

func printUserOrders(w io.Writer, orders []domain.UserOrder) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNUMBER\tCREATED\tPAYMENT\tDELIVERY\tSTATE\tSUM\n")
	for i := range orders {
		o := &orders[i]
		tw.writef("%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			o.ID,
			o.OrderNumber,
			o.CreationDate,
			o.PaymentStateLabel,
			o.DeliveryStateLabel,
			o.OrderState,
			o.CartSum.StringFixed(2),
		)
	}
	return tw.finish()
}

func printPaymentMethods(w io.Writer, methods map[string]domain.PaymentMethod) error {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := newTabWriter(w)
	tw.writef("ID\tNAME\n")
	for _, name := range names {
		tw.writef("%d\t%s\n", methods[name].ID, name)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputRaw pretty prints an unshaped backend response.
func outputRaw(w io.Writer, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}
	return outputJSON(w, v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
