package approval

import (
	"context"

	"github.com/loomhr/workforce-backend-go/internal/domain/user"
)

// WorkflowService is the shared approval state machine. All pending/draft
// to terminal transitions across request kinds pass through Decide.
type WorkflowService interface {
	// SubmitPurchase creates a pending purchase request.
	SubmitPurchase(ctx context.Context, req SubmitPurchaseRequest) (PurchaseRequestResponse, error)

	GetPurchase(ctx context.Context, id string) (PurchaseRequestResponse, error)
	ListPurchases(ctx context.Context, employeeID string) ([]PurchaseRequestResponse, error)

	// Decide moves the request to its terminal status. Check order:
	// existence, current status, actor privilege, self-approval. Approved
	// leave requests additionally consume balance and stamp vacation days;
	// if those effects fail after the decision committed, the returned
	// error is a *PartialApprovalError.
	Decide(ctx context.Context, kind Kind, requestID, actorEmployeeID string, actorRole user.Role, decision Decision, reason *string) error

	// ReconcileLeaveEffects re-applies ledger effects for approved leave
	// requests whose effects have not fully landed. Returns how many
	// requests were completed.
	ReconcileLeaveEffects(ctx context.Context) (int, error)
}
