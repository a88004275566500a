package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/yusufnuru/unimarket-client/internal/domain/entity"
)

const dateFormat = "2006-01-02 15:04"

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

func renderProducts(w io.Writer, products []entity.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found")
		return
	}
	table := newTable(w, []string{"Id", "Name", "Price", "Quantity", "Created At"})
	for _, p := range products {
		table.Append([]string{
			p.ID,
			p.ProductName,
			fmt.Sprintf("%.2f", p.Price),
			strconv.Itoa(p.Quantity),
			p.CreatedAt.Format(dateFormat),
		})
	}
	table.Render()
}

func renderCategories(w io.Writer, categories []entity.Category) {
	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories found")
		return
	}
	table := newTable(w, []string{"Id", "Name", "Products"})
	for _, c := range categories {
		table.Append([]string{strconv.Itoa(c.ID), c.Name, strconv.Itoa(c.ProductCount)})
	}
	table.Render()
}

func renderStoreRequests(w io.Writer, requests []entity.StoreRequest) {
	if len(requests) == 0 {
		fmt.Fprintln(w, "No store requests found")
		return
	}
	table := newTable(w, []string{"Store Name", "Request Message", "Status", "Created At"})
	for _, r := range requests {
		storeName := ""
		if r.Store != nil {
			storeName = r.Store.StoreName
		}
		table.Append([]string{
			storeName,
			truncate(r.RequestMessage, 60),
			string(r.RequestStatus),
			r.CreatedAt.Format(dateFormat),
		})
	}
	table.Render()
}

func renderSellerRequests(w io.Writer, requests []entity.StoreRequest) {
	if len(requests) == 0 {
		fmt.Fprintln(w, "No approval requests yet")
		return
	}
	table := newTable(w, []string{"Id", "Request Message", "Status", "Created At"})
	for _, r := range requests {
		table.Append([]string{
			r.ID,
			truncate(r.RequestMessage, 60),
			string(r.RequestStatus),
			r.CreatedAt.Format(dateFormat),
		})
	}
	table.Render()
}

func renderWarnings(w io.Writer, warnings []entity.StoreWarning) {
	if len(warnings) == 0 {
		fmt.Fprintln(w, "No warnings, all clear")
		return
	}
	table := newTable(w, []string{"Store Id", "Product", "Reason", "Action Taken", "Created At"})
	for _, warning := range warnings {
		product := ""
		if warning.Product != nil {
			product = warning.Product.ProductName
		}
		table.Append([]string{
			warning.StoreID,
			product,
			warning.Reason,
			warning.ActionTaken,
			warning.CreatedAt.Format(dateFormat),
		})
	}
	table.Render()
}

func renderWishlists(w io.Writer, wishlists []entity.WishlistWithProduct) {
	if len(wishlists) == 0 {
		fmt.Fprintln(w, "Wishlist is empty")
		return
	}
	table := newTable(w, []string{"Product Id", "Name", "Price", "Added At"})
	for _, item := range wishlists {
		table.Append([]string{
			item.ProductID,
			item.Product.ProductName,
			fmt.Sprintf("%.2f", item.Product.Price),
			item.CreatedAt.Format(dateFormat),
		})
	}
	table.Render()
}

func renderReports(w io.Writer, reports []entity.StoreReport) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No reports filed")
		return
	}
	table := newTable(w, []string{"Id", "Product", "Description", "Reason", "Created At"})
	for _, r := range reports {
		product := ""
		if r.Product != nil {
			product = r.Product.ProductName
		}
		table.Append([]string{
			r.ID,
			product,
			truncate(r.Description, 40),
			r.Reason,
			r.CreatedAt.Format(dateFormat),
		})
	}
	table.Render()
}

// truncate shortens s to max display characters, counting runes so a
// multi-byte character is never split mid-sequence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
