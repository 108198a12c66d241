package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"teahouse_backend/internal/config"
	"teahouse_backend/internal/models"
	"teahouse_backend/internal/repositories"
)

type fakeNotifier struct {
	receipts []Receipt
	err      error
}

func (f *fakeNotifier) PublishReceipt(receipt Receipt) error {
	f.receipts = append(f.receipts, receipt)
	return f.err
}

func newTestOrderService(t *testing.T, notifier ReceiptNotifier) (*OrderService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	cfg := config.Default()
	svc := NewOrderService(
		db,
		repositories.NewOrderRepository(db),
		repositories.NewMenuRepository(db),
		repositories.NewIngredientRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewMovementRepository(db),
		testComposer(),
		testEngine(),
		notifier,
		cfg.Pricing,
	)
	return svc, mock, db
}

func expectCatalogLoad(mock sqlmock.Sqlmock) {
	menuRows := sqlmock.NewRows([]string{"id", "name", "category_id", "stock", "cost", "image_url"}).
		AddRow(1, "Classic Milk Tea", nil, 10, 5.00, nil)
	mock.ExpectQuery("FROM menu").WillReturnRows(menuRows)

	ingRows := sqlmock.NewRows([]string{"id", "name", "stock", "cost", "ingredient_type", "ingredient_group"}).
		AddRow(7, "Pearls", 100, 0.50, 1, "Boba").
		AddRow(10, "Ice", 500, 0.00, 2, "Scale").
		AddRow(11, "Sugar", 500, 0.00, 2, "Scale")
	mock.ExpectQuery("FROM ingredients").WillReturnRows(ingRows)
}

func expectDrinkUnit(mock sqlmock.Sqlmock, drinkID, drinkIngredientID int64) {
	mock.ExpectQuery("INSERT INTO drinks_orders").
		WithArgs(1, 300).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(drinkID))
	mock.ExpectQuery("INSERT INTO drinks_ingredients").
		WithArgs(drinkID, 7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(drinkIngredientID))
	mock.ExpectExec("UPDATE ingredients SET stock").
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO inventory_movements").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(drinkIngredientID + 100))
	mock.ExpectExec("UPDATE menu SET stock").
		WithArgs(1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO inventory_movements").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(drinkIngredientID + 101))
}

func pearlsCart(quantity int) []CartLine {
	return []CartLine{{
		MenuID:   1,
		Quantity: quantity,
		Customizations: map[CustomizationCategory]Customization{
			CategoryToppings: {Choices: []string{"Pearls"}},
		},
	}}
}

func TestPlaceOrderCommitsAllRows(t *testing.T) {
	svc, mock, db := newTestOrderService(t, nil)
	defer db.Close()

	expectCatalogLoad(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(11.91, 9, "CARD", "not_working_on", nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(300))
	expectDrinkUnit(mock, 501, 601)
	expectDrinkUnit(mock, 502, 602)
	mock.ExpectCommit()

	result, err := svc.PlaceOrder(PlaceOrderRequest{
		Cart:          pearlsCart(2),
		EmployeeID:    9,
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if result.OrderID != 300 {
		t.Errorf("order id = %d, want 300", result.OrderID)
	}
	if result.Subtotal != 11.00 || result.Tax != 0.91 || result.Total != 11.91 {
		t.Errorf("quote = %+v, want subtotal 11.00 tax 0.91 total 11.91", result)
	}
	if result.LoyaltyPoints != nil {
		t.Errorf("loyalty points = %v, want nil for anonymous order", *result.LoyaltyPoints)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPlaceOrderRedeemsAndAccruesLoyalty(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, mock, db := newTestOrderService(t, notifier)
	defer db.Close()

	expectCatalogLoad(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("b@teahouse.dev").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "loyalty_points"}).
			AddRow(4, "b@teahouse.dev", 60))
	mock.ExpectQuery("SELECT loyalty_points FROM users").
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"loyalty_points"}).AddRow(60))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(6.50, 9, "CARD", "not_working_on", 4, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(300))
	expectDrinkUnit(mock, 501, 601)
	expectDrinkUnit(mock, 502, 602)
	mock.ExpectExec("UPDATE users SET loyalty_points").
		WithArgs(16, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.PlaceOrder(PlaceOrderRequest{
		Cart:          pearlsCart(2),
		EmployeeID:    9,
		PaymentMethod: "CARD",
		Email:         "b@teahouse.dev",
		UseLoyalty:    true,
		WantsReceipt:  true,
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if result.Discount != 5.00 || result.Subtotal != 6.00 || result.Total != 6.50 {
		t.Errorf("quote = %+v, want discount 5.00 subtotal 6.00 total 6.50", result)
	}
	if result.LoyaltyPoints == nil || *result.LoyaltyPoints != 16 {
		t.Errorf("loyalty points = %v, want 16", result.LoyaltyPoints)
	}
	if len(notifier.receipts) != 1 {
		t.Fatalf("receipts published = %d, want 1", len(notifier.receipts))
	}
	receipt := notifier.receipts[0]
	if receipt.OrderID != 300 || receipt.Email != "b@teahouse.dev" {
		t.Errorf("receipt = %+v", receipt)
	}
	if !strings.Contains(receipt.Body, "Total: $6.50") {
		t.Errorf("receipt body missing total:\n%s", receipt.Body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPlaceOrderUnknownMenuItemWritesNothing(t *testing.T) {
	svc, mock, db := newTestOrderService(t, nil)
	defer db.Close()

	expectCatalogLoad(mock)

	_, err := svc.PlaceOrder(PlaceOrderRequest{
		Cart:       []CartLine{{MenuID: 42, Quantity: 1}},
		EmployeeID: 9,
	})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("rows were written for an unresolvable order: %v", err)
	}
}

func TestPlaceOrderRollsBackOnFailure(t *testing.T) {
	svc, mock, db := newTestOrderService(t, nil)
	defer db.Close()

	expectCatalogLoad(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(300))
	mock.ExpectQuery("INSERT INTO drinks_orders").
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectRollback()

	_, err := svc.PlaceOrder(PlaceOrderRequest{
		Cart:       pearlsCart(1),
		EmployeeID: 9,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPlaceOrderRejectsInvalidPaymentMethod(t *testing.T) {
	svc, mock, db := newTestOrderService(t, nil)
	defer db.Close()

	_, err := svc.PlaceOrder(PlaceOrderRequest{
		Cart:          pearlsCart(1),
		EmployeeID:    9,
		PaymentMethod: "BARTER",
	})
	if err == nil {
		t.Fatal("expected error for invalid payment method")
	}
	if !errors.Is(err, repositories.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL for rejected order: %v", err)
	}
}

func TestPlaceOrderRollsBackNewUserRow(t *testing.T) {
	svc, mock, db := newTestOrderService(t, nil)
	defer db.Close()

	expectCatalogLoad(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("c@teahouse.dev").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "loyalty_points"}).
			AddRow(5, "c@teahouse.dev", 0))
	mock.ExpectQuery("SELECT loyalty_points FROM users").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"loyalty_points"}).AddRow(0))
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectRollback()

	_, err := svc.PlaceOrder(PlaceOrderRequest{
		Cart:       pearlsCart(1),
		EmployeeID: 9,
		Email:      "c@teahouse.dev",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("user upsert not covered by the rollback: %v", err)
	}
}

func expectOrderSelect(mock sqlmock.Sqlmock, orderID int64, status models.OrderStatus) {
	rows := sqlmock.NewRows([]string{"id", "placed_at", "cost", "employee_id", "payment_method", "order_status", "user_id"}).
		AddRow(orderID, time.Now(), 11.91, 9, "CARD", string(status), nil)
	mock.ExpectQuery("SELECT id, placed_at").WithArgs(orderID).WillReturnRows(rows)
}

func TestAdvanceOrderMovesForward(t *testing.T) {
	svc, mock, db := newTestOrderService(t, nil)
	defer db.Close()

	mock.ExpectBegin()
	expectOrderSelect(mock, 12, models.StatusWorking)
	mock.ExpectExec("UPDATE orders SET order_status").
		WithArgs("completed", 12).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	status, err := svc.AdvanceOrder(12)
	if err != nil {
		t.Fatalf("AdvanceOrder: %v", err)
	}
	if status != models.StatusCompleted {
		t.Errorf("status = %s, want %s", status, models.StatusCompleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAdvanceOrderCompletedIsNoOp(t *testing.T) {
	svc, mock, db := newTestOrderService(t, nil)
	defer db.Close()

	mock.ExpectBegin()
	expectOrderSelect(mock, 12, models.StatusCompleted)
	mock.ExpectCommit()

	status, err := svc.AdvanceOrder(12)
	if err != nil {
		t.Fatalf("AdvanceOrder: %v", err)
	}
	if status != models.StatusCompleted {
		t.Errorf("status = %s, want %s", status, models.StatusCompleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("status write issued for a completed order: %v", err)
	}
}

func TestAdvanceOrderUnknownOrder(t *testing.T) {
	svc, mock, db := newTestOrderService(t, nil)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, placed_at").WithArgs(99).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.AdvanceOrder(99)
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSetOrderStatusRejectsUnknownState(t *testing.T) {
	svc, _, db := newTestOrderService(t, nil)
	defer db.Close()

	if err := svc.SetOrderStatus(1, "archived"); err == nil {
		t.Fatal("expected error for unrecognized status")
	}
}
