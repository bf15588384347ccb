package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mhizterpaul/cartlink/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Customer command flags
var (
	quantity      int
	orderID       int64
	reason        string
	amountText    string
	accountNumber string
	bankName      string
	accountName   string
	title         string
	category      string
	forMerchant   bool
	source        string
	dwell         time.Duration
)

// cartCmd shows the signed-in customer's cart
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the cart, or change it with a subcommand",
	RunE:  showCart,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <itemId>",
	Short: "Put an item in the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "item id")
		if err != nil {
			return err
		}
		if _, err := rt.store.Cart.Add(cmd.Context(), trade.AddCartItem{ItemID: id, Quantity: quantity}).Wait(cmd.Context()); err != nil {
			return err
		}
		return showCart(cmd, nil)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <itemId>",
	Short: "Take an item out of the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "item id")
		if err != nil {
			return err
		}
		if _, err := rt.store.Cart.Remove(cmd.Context(), id).Wait(cmd.Context()); err != nil {
			return err
		}
		return showCart(cmd, nil)
	},
}

var cartQuantityCmd = &cobra.Command{
	Use:   "quantity <itemId> <quantity>",
	Short: "Change how many of an item are in the cart",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "item id")
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		if _, err := rt.store.Cart.UpdateQuantity(cmd.Context(), id, n).Wait(cmd.Context()); err != nil {
			return err
		}
		return showCart(cmd, nil)
	},
}

// showCart refetches the cart; mutations do not update the cart slice themselves.
func showCart(cmd *cobra.Command, _ []string) error {
	c := rt.store.Cart
	if _, err := c.Fetch(cmd.Context()).Wait(cmd.Context()); err != nil {
		return err
	}
	st := c.State()
	out := struct {
		Cart  *trade.Cart     `json:"cart"`
		Total decimal.Decimal `json:"total"`
	}{Cart: st.Data.Cart, Total: decimal.Zero}
	if st.Data.Cart != nil {
		out.Total = st.Data.Cart.Total()
	}
	return printJSON(cmd, out)
}

// refundsCmd lists the customer's refunds, or one order's with --order
var refundsCmd = &cobra.Command{
	Use:   "refunds",
	Short: "List refund requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := rt.store.Refunds
		if orderID > 0 {
			return settle(cmd, r.Slice, r.FetchForOrder(cmd.Context(), orderID))
		}
		return settle(cmd, r.Slice, r.FetchForCustomer(cmd.Context()))
	},
}

var refundsRequestCmd = &cobra.Command{
	Use:   "request <orderId>",
	Short: "Ask for a refund on an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "order id")
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(amountText)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", amountText, err)
		}
		return result(cmd, rt.store.Refunds.Request(cmd.Context(), id, trade.RefundRequest{
			Reason:        reason,
			Amount:        amount,
			AccountNumber: accountNumber,
			BankName:      bankName,
			AccountName:   accountName,
		}))
	},
}

// complaintsCmd lists complaints for the customer, one order (--order) or the merchant (--merchant)
var complaintsCmd = &cobra.Command{
	Use:   "complaints",
	Short: "List complaints",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := rt.store.Complaints
		switch {
		case forMerchant:
			return settle(cmd, c.Slice, c.FetchForMerchant(cmd.Context()))
		case orderID > 0:
			return settle(cmd, c.Slice, c.FetchForOrder(cmd.Context(), orderID))
		default:
			return settle(cmd, c.Slice, c.FetchForCustomer(cmd.Context()))
		}
	},
}

var complaintsSubmitCmd = &cobra.Command{
	Use:   "submit <orderId>",
	Short: "File a complaint about an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "order id")
		if err != nil {
			return err
		}
		return result(cmd, rt.store.Complaints.Submit(cmd.Context(), id, trade.ComplaintRequest{
			Title:       title,
			Description: description,
			Category:    category,
		}))
	},
}

// trackCmd records a visit on a product link: a page view now and the time
// spent when the dwell elapses or the command is interrupted.
var trackCmd = &cobra.Command{
	Use:   "track <linkId>",
	Short: "Record a product link visit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "link id")
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		visit := rt.api.Tracker.Begin(ctx, id, source)

		timer := time.NewTimer(dwell)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
		// the beacon still goes out after an interrupt
		endCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		visit.End(endCtx)
		return nil
	},
}

func init() {
	cartAddCmd.Flags().IntVar(&quantity, "quantity", 1, "How many to add")
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartQuantityCmd)

	refundsCmd.Flags().Int64Var(&orderID, "order", 0, "Only refunds for this order")
	f := refundsRequestCmd.Flags()
	f.StringVar(&reason, "reason", "", "Why the refund is requested")
	f.StringVar(&amountText, "amount", "0", "Amount to refund")
	f.StringVar(&accountNumber, "account-number", "", "Bank account number")
	f.StringVar(&bankName, "bank", "", "Bank name")
	f.StringVar(&accountName, "account-name", "", "Bank account holder")
	refundsCmd.AddCommand(refundsRequestCmd)

	complaintsCmd.Flags().Int64Var(&orderID, "order", 0, "Only complaints about this order")
	complaintsCmd.Flags().BoolVar(&forMerchant, "merchant", false, "Complaints received by the signed-in merchant")
	complaintsSubmitCmd.Flags().StringVar(&title, "title", "", "Short summary")
	complaintsSubmitCmd.Flags().StringVar(&description, "description", "", "What went wrong")
	complaintsSubmitCmd.Flags().StringVar(&category, "category", "", "Complaint category")
	complaintsCmd.AddCommand(complaintsSubmitCmd)

	trackCmd.Flags().StringVar(&source, "source", "", "Traffic source, e.g. twitter")
	trackCmd.Flags().DurationVar(&dwell, "dwell", 0, "How long the visit lasts before time spent is recorded")
}
