package main

import (
	"fmt"

	"github.com/mhizterpaul/cartlink/internal/domain/catalog"
	"github.com/mhizterpaul/cartlink/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Product form flags
var (
	productName    string
	manufacturer   string
	productionYear int
	priceText      string
	unitsInStock   int
	productType    string
	description    string
	payOnDelivery  bool
	images         []string
	specs          map[string]string
)

// Coupon, order, link and review flags
var (
	discountText string
	validFrom    string
	validUntil   string
	maxUsage     int
	maxUsers     int
	orderStatus  string
	startDate    string
	endDate      string
	merchantID   int64
	mine         bool
	rating       int
	comment      string
)

// productsCmd lists the merchant's products
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products, or manage them with a subcommand",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := rt.store.Products
		return settle(cmd, p.Slice, p.Fetch(cmd.Context()))
	},
}

var productsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search products by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := rt.store.Products
		return settle(cmd, p.Slice, p.Search(cmd.Context(), args[0]))
	},
}

var productsInStockCmd = &cobra.Command{
	Use:   "in-stock",
	Short: "List products with units in stock",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := rt.store.Products
		return settle(cmd, p.Slice, p.FetchInStock(cmd.Context()))
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get <productId>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "product id")
		if err != nil {
			return err
		}
		p := rt.store.Products
		return settle(cmd, p.Slice, p.Get(cmd.Context(), id))
	},
}

var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := productInput()
		if err != nil {
			return err
		}
		return result(cmd, rt.store.Products.Add(cmd.Context(), in))
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <productId>",
	Short: "Replace a product's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "product id")
		if err != nil {
			return err
		}
		in, err := productInput()
		if err != nil {
			return err
		}
		return result(cmd, rt.store.Products.Update(cmd.Context(), id, in))
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <productId>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "product id")
		if err != nil {
			return err
		}
		return result(cmd, rt.store.Products.Delete(cmd.Context(), id))
	},
}

// couponsCmd lists the coupons on one product
var couponsCmd = &cobra.Command{
	Use:   "coupons <merchantId> <productId>",
	Short: "List a product's coupons",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mid, pid, err := merchantProduct(args)
		if err != nil {
			return err
		}
		p := rt.store.Products
		return settle(cmd, p.Slice, p.FetchCoupons(cmd.Context(), mid, pid))
	},
}

var couponsCreateCmd = &cobra.Command{
	Use:   "create <merchantId> <productId>",
	Short: "Create a coupon",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mid, pid, err := merchantProduct(args)
		if err != nil {
			return err
		}
		discount, err := decimal.NewFromString(discountText)
		if err != nil {
			return fmt.Errorf("invalid discount %q: %w", discountText, err)
		}
		return result(cmd, rt.store.Products.CreateCoupon(cmd.Context(), mid, pid, catalog.CouponInput{
			Discount:   discount,
			ValidFrom:  validFrom,
			ValidUntil: validUntil,
			MaxUsage:   maxUsage,
			MaxUsers:   maxUsers,
		}))
	},
}

var couponsDeleteCmd = &cobra.Command{
	Use:   "delete <merchantId> <productId> <couponId>",
	Short: "Delete a coupon",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		mid, pid, err := merchantProduct(args)
		if err != nil {
			return err
		}
		cid, err := idArg(args, 2, "coupon id")
		if err != nil {
			return err
		}
		return result(cmd, rt.store.Products.DeleteCoupon(cmd.Context(), mid, pid, cid))
	},
}

// ordersCmd lists the merchant's orders
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders, optionally by --status",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter trade.OrderFilter
		if orderStatus != "" {
			status, err := trade.ParseOrderStatus(orderStatus)
			if err != nil {
				return err
			}
			filter.Status = status
		}
		o := rt.store.Orders
		return settle(cmd, o.Slice, o.Fetch(cmd.Context(), filter))
	},
}

var ordersByLinkCmd = &cobra.Command{
	Use:   "by-link <linkId>",
	Short: "List orders placed through one product link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "link id")
		if err != nil {
			return err
		}
		o := rt.store.Orders
		return settle(cmd, o.Slice, o.FetchByLink(cmd.Context(), id))
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status <orderId> <status>",
	Short: "Move an order to a new status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "order id")
		if err != nil {
			return err
		}
		status, err := trade.ParseOrderStatus(args[1])
		if err != nil {
			return err
		}
		return result(cmd, rt.store.Orders.UpdateStatus(cmd.Context(), id, status))
	},
}

var ordersTrackingCmd = &cobra.Command{
	Use:   "tracking <orderId> <trackingId>",
	Short: "Set an order's shipment tracking id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "order id")
		if err != nil {
			return err
		}
		return result(cmd, rt.store.Orders.UpdateTracking(cmd.Context(), id, args[1]))
	},
}

// linksCmd lists the merchant's product links
var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List product links, or manage them with a subcommand",
	RunE: func(cmd *cobra.Command, args []string) error {
		l := rt.store.ProductLinks
		return settle(cmd, l.Slice, l.Fetch(cmd.Context()))
	},
}

var linksGenerateCmd = &cobra.Command{
	Use:   "generate <productId>",
	Short: "Create a shareable link for a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "product id")
		if err != nil {
			return err
		}
		return result(cmd, rt.store.ProductLinks.Generate(cmd.Context(), id))
	},
}

var linksAnalyticsCmd = &cobra.Command{
	Use:   "analytics <linkId>",
	Short: "Show recorded visits on a link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "link id")
		if err != nil {
			return err
		}
		l := rt.store.ProductLinks
		return settle(cmd, l.Slice, l.FetchAnalytics(cmd.Context(), id, catalog.AnalyticsRange{StartDate: startDate, EndDate: endDate}))
	},
}

var linksTrafficCmd = &cobra.Command{
	Use:   "traffic <linkId>",
	Short: "Show visits per traffic source on a link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args, 0, "link id")
		if err != nil {
			return err
		}
		l := rt.store.ProductLinks
		return settle(cmd, l.Slice, l.FetchTrafficSources(cmd.Context(), id))
	},
}

// dashboardCmd loads stats, sales and traffic together
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show dashboard stats, sales and traffic",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := rt.store.Dashboard
		return settle(cmd, d.Slice, d.FetchAll(cmd.Context()))
	},
}

var dashboardStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show headline figures only",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := rt.store.Dashboard
		return settle(cmd, d.Slice, d.FetchStats(cmd.Context()))
	},
}

var dashboardSalesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Show the sales series only",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := rt.store.Dashboard
		return settle(cmd, d.Slice, d.FetchSales(cmd.Context()))
	},
}

var dashboardTrafficCmd = &cobra.Command{
	Use:   "traffic",
	Short: "Show the traffic series only",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := rt.store.Dashboard
		return settle(cmd, d.Slice, d.FetchTraffic(cmd.Context()))
	},
}

// reviewsCmd lists reviews: all, one merchant's (--merchant) or the signed-in merchant's (--mine)
var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "List reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := rt.store.Reviews
		switch {
		case mine:
			return settle(cmd, r.Slice, r.FetchMine(cmd.Context()))
		case merchantID > 0:
			return settle(cmd, r.Slice, r.FetchForMerchant(cmd.Context(), merchantID))
		default:
			return settle(cmd, r.Slice, r.Fetch(cmd.Context()))
		}
	},
}

var reviewsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Rate a merchant from 1 to 5",
	RunE: func(cmd *cobra.Command, args []string) error {
		return result(cmd, rt.store.Reviews.Create(cmd.Context(), trade.ReviewInput{
			MerchantID: merchantID,
			Rating:     rating,
			Comment:    comment,
		}))
	},
}

func init() {
	for _, c := range []*cobra.Command{productsAddCmd, productsUpdateCmd} {
		f := c.Flags()
		f.StringVar(&productName, "name", "", "Product name")
		f.StringVar(&manufacturer, "manufacturer", "", "Manufacturer")
		f.IntVar(&productionYear, "year", 0, "Production year")
		f.StringVar(&priceText, "price", "0", "Unit price, e.g. 19.99")
		f.IntVar(&unitsInStock, "units", 0, "Units in stock")
		f.StringVar(&productType, "type", "", "Product type")
		f.StringVar(&description, "description", "", "Description")
		f.BoolVar(&payOnDelivery, "pay-on-delivery", false, "Allow payment on delivery")
		f.StringSliceVar(&images, "image", nil, "Image URL (repeatable)")
		f.StringToStringVar(&specs, "spec", nil, "Specification key=value (repeatable)")
	}
	productsCmd.AddCommand(productsSearchCmd)
	productsCmd.AddCommand(productsInStockCmd)
	productsCmd.AddCommand(productsGetCmd)
	productsCmd.AddCommand(productsAddCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsDeleteCmd)

	couponsCreateCmd.Flags().StringVar(&discountText, "discount", "0", "Discount amount")
	couponsCreateCmd.Flags().StringVar(&validFrom, "from", "", "First valid day, e.g. 2024-01-01")
	couponsCreateCmd.Flags().StringVar(&validUntil, "until", "", "Last valid day")
	couponsCreateCmd.Flags().IntVar(&maxUsage, "max-usage", 0, "Maximum redemptions")
	couponsCreateCmd.Flags().IntVar(&maxUsers, "max-users", 0, "Maximum distinct customers")
	couponsCmd.AddCommand(couponsCreateCmd)
	couponsCmd.AddCommand(couponsDeleteCmd)
	productsCmd.AddCommand(couponsCmd)

	ordersCmd.Flags().StringVar(&orderStatus, "status", "", "Only orders in this status")
	ordersCmd.AddCommand(ordersByLinkCmd)
	ordersCmd.AddCommand(ordersStatusCmd)
	ordersCmd.AddCommand(ordersTrackingCmd)

	linksAnalyticsCmd.Flags().StringVar(&startDate, "from", "", "Start date")
	linksAnalyticsCmd.Flags().StringVar(&endDate, "to", "", "End date")
	linksCmd.AddCommand(linksGenerateCmd)
	linksCmd.AddCommand(linksAnalyticsCmd)
	linksCmd.AddCommand(linksTrafficCmd)

	dashboardCmd.AddCommand(dashboardStatsCmd)
	dashboardCmd.AddCommand(dashboardSalesCmd)
	dashboardCmd.AddCommand(dashboardTrafficCmd)

	reviewsCmd.Flags().Int64Var(&merchantID, "merchant", 0, "Only this merchant's reviews")
	reviewsCmd.Flags().BoolVar(&mine, "mine", false, "Reviews of the signed-in merchant")
	reviewsCreateCmd.Flags().Int64Var(&merchantID, "merchant", 0, "Merchant being reviewed")
	reviewsCreateCmd.Flags().IntVar(&rating, "rating", 0, "Rating from 1 to 5")
	reviewsCreateCmd.Flags().StringVar(&comment, "comment", "", "Comment")
	reviewsCmd.AddCommand(reviewsCreateCmd)
}

func productInput() (catalog.ProductInput, error) {
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return catalog.ProductInput{}, fmt.Errorf("invalid price %q: %w", priceText, err)
	}
	return catalog.ProductInput{
		Name:           productName,
		Manufacturer:   manufacturer,
		ProductionYear: productionYear,
		Price:          price,
		UnitsInStock:   unitsInStock,
		Type:           productType,
		Description:    description,
		PayOnDelivery:  payOnDelivery,
		Images:         images,
		Specifications: specs,
	}, nil
}

func merchantProduct(args []string) (int64, int64, error) {
	mid, err := idArg(args, 0, "merchant id")
	if err != nil {
		return 0, 0, err
	}
	pid, err := idArg(args, 1, "product id")
	if err != nil {
		return 0, 0, err
	}
	return mid, pid, nil
}
