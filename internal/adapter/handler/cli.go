package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rledge21/shardmart/internal/core/domain"
	"github.com/rledge21/shardmart/internal/core/service"
)

// CLI parses console input, dispatches to the coordinators, and reports
// outcomes as text. Any argument not supplied up front is prompted for.
type CLI struct {
	orders   *service.OrderService
	products *service.ProductService
	reports  *service.ReportService
	in       *bufio.Scanner
	out      io.Writer
}

func NewCLI(orders *service.OrderService, products *service.ProductService, reports *service.ReportService, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		orders:   orders,
		products: products,
		reports:  reports,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

func (c *CLI) PlaceOrder(ctx context.Context, region, customer, product string, quantity int) error {
	if region == "" {
		region = strings.ToLower(c.prompt("Enter your region (boston/denver/seattle)"))
	}
	if customer == "" {
		customer = c.prompt("Enter your name")
	}
	if product == "" {
		product = c.prompt("Enter product name")
	}
	if quantity <= 0 {
		n, err := c.promptInt("Enter quantity")
		if err != nil {
			return err
		}
		quantity = n
	}

	if err := c.orders.PlaceOrder(ctx, domain.Region(region), customer, product, quantity); err != nil {
		fmt.Fprintf(c.out, "Order failed: %s\n", reason(err))
		return err
	}

	fmt.Fprintf(c.out, "Order placed for %s: %d %s(s) in %s region.\n", customer, quantity, product, region)
	return nil
}

func (c *CLI) RegisterProduct(ctx context.Context, region, product, componentsCSV string, quantity int) error {
	if region == "" {
		region = strings.ToLower(c.prompt("Enter region (boston/denver/seattle)"))
	}
	if product == "" {
		product = c.prompt("Enter new product name")
	}
	if componentsCSV == "" {
		componentsCSV = c.prompt("Enter required components (comma separated)")
	}
	if quantity <= 0 {
		n, err := c.promptInt("Enter quantity for this product")
		if err != nil {
			return err
		}
		quantity = n
	}

	components := splitComponents(componentsCSV)
	if err := c.products.RegisterProduct(ctx, domain.Region(region), product, components, quantity); err != nil {
		fmt.Fprintf(c.out, "Product registration failed: %s\n", reason(err))
		return err
	}

	fmt.Fprintf(c.out, "Product %q registered in %s with components %s.\n", product, region, strings.Join(components, ", "))
	return nil
}

func (c *CLI) ViewSales(ctx context.Context) error {
	sales, err := c.reports.ViewSales(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "Could not fetch sales: %v\n", err)
		return err
	}

	if len(sales) == 0 {
		fmt.Fprintln(c.out, "No sales data available in the central store.")
		return nil
	}
	for _, s := range sales {
		fmt.Fprintf(c.out, "Order ID: %d, Customer: %s, Product: %s, Quantity: %d, Region: %s\n",
			s.OrderID, s.CustomerName, s.ProductName, s.Quantity, s.Region)
	}
	return nil
}

// reason maps coordinator errors onto the short messages shown to the user.
func reason(err error) string {
	switch {
	case errors.Is(err, service.ErrUnknownRegion):
		return "unknown region"
	case errors.Is(err, service.ErrProductNotFound):
		return "product not found"
	case errors.Is(err, service.ErrInsufficientStock):
		return "insufficient stock"
	case errors.Is(err, service.ErrMissingComponent):
		return "missing component"
	}
	return err.Error()
}

func (c *CLI) prompt(label string) string {
	fmt.Fprintf(c.out, "%s: ", label)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *CLI) promptInt(label string) (int, error) {
	raw := c.prompt(label)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", raw)
	}
	return n, nil
}

func splitComponents(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
