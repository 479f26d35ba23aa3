package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"shopcore/internal/cart"
)

// Command handlers. Each one prompts for its inputs, calls into the service
// layer, and prints either the result or the error message. Errors are also
// returned so the handlers stay testable.

func (a *App) SignUp(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	displayName, err := GetSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	sess, err := a.sessions.SignUp(ctx, email, password, displayName)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Welcome, %s!", sess.DisplayName))
	return nil
}

func (a *App) SignIn(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	sess, err := a.sessions.SignIn(ctx, email, password)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Signed in as %s", sess.Email))
	return nil
}

func (a *App) SignOut(ctx context.Context) error {
	if err := a.sessions.SignOut(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Signed out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	sess, err := a.sessions.CurrentSession(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if sess == nil {
		printlnFn("Not signed in")
		return nil
	}
	role := "customer"
	if sess.IsAdmin {
		role = "administrator"
	}
	printlnFn(fmt.Sprintf("%s <%s> (%s)", sess.DisplayName, sess.Email, role))
	return nil
}

func (a *App) ChangeAdminPassword(ctx context.Context) error {
	current, err := GetPassword("Enter current admin password", os.Stdout)
	if err != nil {
		return err
	}
	next, err := GetPassword("Enter new admin password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.sessions.ChangeAdminPassword(ctx, current, next); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Admin password updated")
	return nil
}

func (a *App) AddItem(ctx context.Context) error {
	item, err := a.promptItem()
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.cart.Add(ctx, *item); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Added to cart")
	return nil
}

func (a *App) RemoveItem(ctx context.Context, productID string) error {
	if err := a.cart.Remove(ctx, productID); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Removed from cart")
	return nil
}

func (a *App) ShowCart(ctx context.Context) error {
	items, err := a.cart.Items(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(items) == 0 {
		printlnFn("Cart is empty")
		return nil
	}
	for _, it := range items {
		printlnFn(fmt.Sprintf("%-12s %-20s x%d  %s", it.ProductID, it.Name, it.Quantity, formatCents(it.UnitPriceCents*int64(it.Quantity))))
	}
	printlnFn(fmt.Sprintf("Total: %s", formatCents(cart.TotalCents(items))))
	return nil
}

func (a *App) Checkout(ctx context.Context) error {
	order, err := a.cart.Checkout(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Order %s placed, total %s", order.ID, formatCents(order.TotalCents)))
	return nil
}

func (a *App) Orders(ctx context.Context) error {
	orders, err := a.cart.Orders(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(orders) == 0 {
		printlnFn("No orders yet")
		return nil
	}
	for _, o := range orders {
		printlnFn(fmt.Sprintf("%s  %s  %s  %s", o.ID, o.PlacedAt.Format("2006-01-02 15:04"), o.Email, formatCents(o.TotalCents)))
	}
	return nil
}

func (a *App) promptItem() (*cart.Item, error) {
	productID, err := GetSimpleText(a.reader, "Product id", os.Stdout)
	if err != nil {
		return nil, err
	}
	name, err := GetSimpleText(a.reader, "Product name", os.Stdout)
	if err != nil {
		return nil, err
	}
	priceText, err := GetSimpleText(a.reader, "Unit price (cents)", os.Stdout)
	if err != nil {
		return nil, err
	}
	price, err := strconv.ParseInt(priceText, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", priceText)
	}
	quantityText, err := GetSimpleText(a.reader, "Quantity", os.Stdout)
	if err != nil {
		return nil, err
	}
	quantity, err := strconv.Atoi(quantityText)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q", quantityText)
	}

	return &cart.Item{ProductID: productID, Name: name, UnitPriceCents: price, Quantity: quantity}, nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
