package testutil

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/mhizterpaul/cartlink/internal/domain/catalog"
	"github.com/mhizterpaul/cartlink/internal/domain/identity"
	"github.com/mhizterpaul/cartlink/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// Fixtures builds realistic domain values from a seeded faker so failures
// are reproducible.
type Fixtures struct {
	faker *gofakeit.Faker
}

// NewFixtures returns fixtures seeded with seed.
func NewFixtures(seed uint64) *Fixtures {
	return &Fixtures{faker: gofakeit.New(seed)}
}

func (f *Fixtures) price() decimal.Decimal {
	return decimal.NewFromFloat(f.faker.Price(1, 1000)).Round(2)
}

func (f *Fixtures) Merchant() identity.Merchant {
	return identity.Merchant{
		MerchantID:  int64(f.faker.Number(1, 10000)),
		Email:       f.faker.Email(),
		FirstName:   f.faker.FirstName(),
		LastName:    f.faker.LastName(),
		PhoneNumber: f.faker.Phone(),
		Rating:      float64(f.faker.Number(1, 5)),
		RatingCount: f.faker.Number(0, 500),
	}
}

func (f *Fixtures) SignUp() identity.SignUpRequest {
	return identity.SignUpRequest{
		Email:       f.faker.Email(),
		Password:    f.faker.Password(true, true, true, false, false, 12),
		FirstName:   f.faker.FirstName(),
		LastName:    f.faker.LastName(),
		PhoneNumber: f.faker.Phone(),
	}
}

func (f *Fixtures) Login() identity.LoginRequest {
	return identity.LoginRequest{
		Email:    f.faker.Email(),
		Password: f.faker.Password(true, true, true, false, false, 12),
	}
}

func (f *Fixtures) Product() catalog.Product {
	return catalog.Product{
		ProductID:      int64(f.faker.Number(1, 10000)),
		Name:           f.faker.ProductName(),
		Manufacturer:   f.faker.Company(),
		ProductionYear: f.faker.Year(),
		Price:          f.price(),
		UnitsInStock:   f.faker.Number(0, 100),
		Type:           f.faker.ProductCategory(),
		Description:    f.faker.Sentence(8),
		PayOnDelivery:  f.faker.Bool(),
	}
}

func (f *Fixtures) Products(n int) []catalog.Product {
	out := make([]catalog.Product, n)
	for i := range out {
		out[i] = f.Product()
	}
	return out
}

func (f *Fixtures) ProductLink() catalog.ProductLink {
	return catalog.ProductLink{
		LinkID:      int64(f.faker.Number(1, 10000)),
		URL:         f.faker.URL(),
		Clicks:      f.faker.Number(0, 1000),
		Conversions: f.faker.Number(0, 50),
	}
}

func (f *Fixtures) Order(status trade.OrderStatus) trade.Order {
	return trade.Order{
		OrderID:    int64(f.faker.Number(1, 10000)),
		OrderSize:  f.faker.Number(1, 10),
		TotalPrice: f.price(),
		Status:     status,
		Paid:       f.faker.Bool(),
		TrackingID: f.faker.UUID(),
	}
}

func (f *Fixtures) Cart(items int) trade.Cart {
	cart := trade.Cart{CartID: int64(f.faker.Number(1, 10000))}
	for range items {
		cart.Items = append(cart.Items, trade.CartItem{
			ItemID:   int64(f.faker.Number(1, 10000)),
			Quantity: f.faker.Number(1, 5),
			Price:    f.price(),
			Discount: decimal.Zero,
		})
	}
	return cart
}

func (f *Fixtures) Refund() trade.Refund {
	return trade.Refund{
		RefundID: int64(f.faker.Number(1, 10000)),
		Reason:   f.faker.Sentence(5),
		Amount:   f.price(),
		Status:   trade.RefundPending,
		BankName: f.faker.Company(),
	}
}

func (f *Fixtures) Complaint() trade.Complaint {
	return trade.Complaint{
		ComplaintID: int64(f.faker.Number(1, 10000)),
		Title:       f.faker.Sentence(3),
		Description: f.faker.Sentence(10),
		Status:      trade.ComplaintPending,
	}
}

func (f *Fixtures) Review(merchantID int64) trade.Review {
	return trade.Review{
		ReviewID:   int64(f.faker.Number(1, 10000)),
		MerchantID: merchantID,
		Rating:     f.faker.Number(1, 5),
		Comment:    f.faker.Sentence(6),
	}
}
