package store

import (
	"context"

	"github.com/mhizterpaul/cartlink/internal/domain/trade"
)

type ComplaintState struct {
	Complaints []trade.Complaint `json:"complaints"`
}

type complaintFiling struct {
	orderID int64
	req     trade.ComplaintRequest
}

type ComplaintSlice struct {
	*Slice[ComplaintState]
	calls ComplaintCalls
	inbox MerchantInbox
}

func NewComplaintSlice(calls ComplaintCalls, inbox MerchantInbox, opts ...Option) *ComplaintSlice {
	return &ComplaintSlice{Slice: NewSlice("complaint", ComplaintState{}, opts...), calls: calls, inbox: inbox}
}

func setComplaints(_ ComplaintState, complaints []trade.Complaint) ComplaintState {
	return ComplaintState{Complaints: complaints}
}

func (c *ComplaintSlice) Submit(ctx context.Context, orderID int64, req trade.ComplaintRequest) *Result[trade.Complaint] {
	return Dispatch(ctx, c.Slice, Operation[ComplaintState, complaintFiling, trade.Complaint]{
		Type: "complaint/submitComplaint",
		Call: func(ctx context.Context, f complaintFiling) (trade.Complaint, error) {
			if err := validate.StructCtx(ctx, f.req); err != nil {
				return trade.Complaint{}, err
			}
			return c.calls.Submit(ctx, f.orderID, f.req)
		},
	}, complaintFiling{orderID: orderID, req: req})
}

func (c *ComplaintSlice) FetchForCustomer(ctx context.Context) *Result[[]trade.Complaint] {
	return Dispatch(ctx, c.Slice, Operation[ComplaintState, Empty, []trade.Complaint]{
		Type:      "complaint/getCustomerComplaints",
		Call:      noArg(c.calls.ForCustomer),
		Fulfilled: setComplaints,
	}, Empty{})
}

func (c *ComplaintSlice) FetchForOrder(ctx context.Context, orderID int64) *Result[[]trade.Complaint] {
	return Dispatch(ctx, c.Slice, Operation[ComplaintState, int64, []trade.Complaint]{
		Type:      "complaint/getOrderComplaints",
		Call:      c.calls.ForOrder,
		Fulfilled: setComplaints,
	}, orderID)
}

// FetchForMerchant lists complaints against the signed-in merchant.
func (c *ComplaintSlice) FetchForMerchant(ctx context.Context) *Result[[]trade.Complaint] {
	return Dispatch(ctx, c.Slice, Operation[ComplaintState, Empty, []trade.Complaint]{
		Type:      "complaint/getMerchantComplaints",
		Call:      noArg(c.inbox.Complaints),
		Fulfilled: setComplaints,
	}, Empty{})
}
