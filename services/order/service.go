package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	inventoryRepo "hotelbook/database/repository/inventory"
	orderRepo "hotelbook/database/repository/order"
	"hotelbook/models"
	"hotelbook/services/recommend"
	"hotelbook/services/tasks"
	"hotelbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const idempotencyTTL = 24 * time.Hour

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

type DefaultOrderService struct {
	Repo        orderRepo.OrderRepository
	Inventory   inventoryRepo.InventoryRepository
	Resolver    *recommend.Resolver
	Payments    PaymentGateway
	Ledger      LedgerEnqueuer   // retries releases that failed inline; nil only logs them
	Idempotency IdempotencyStore // nil disables duplicate detection
	Currency    string
	Logger      *zap.Logger
	Now         func() time.Time
}

func NewOrderService(
	repo orderRepo.OrderRepository,
	inventory inventoryRepo.InventoryRepository,
	payments PaymentGateway,
	ledger LedgerEnqueuer,
	idem IdempotencyStore,
	currency string,
	logger *zap.Logger,
) *DefaultOrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultOrderService{
		Repo:        repo,
		Inventory:   inventory,
		Resolver:    recommend.NewResolver(inventory),
		Payments:    payments,
		Ledger:      ledger,
		Idempotency: idem,
		Currency:    currency,
		Logger:      logger,
		Now:         time.Now,
	}
}

// stay is a validated checkout request.
type stay struct {
	checkIn, checkOut time.Time
	nights            int
	counts            map[int64]int // room type -> units, duplicate lines merged
	order             []int64       // room types in first-seen order
}

func validateInput(input models.PlaceOrderInput) (*stay, error) {
	if strings.TrimSpace(input.GuestName) == "" {
		return nil, fmt.Errorf("%w: guest name is required", ErrInvalidOrder)
	}
	if !phonePattern.MatchString(input.GuestPhone) {
		return nil, fmt.Errorf("%w: invalid phone number", ErrInvalidOrder)
	}
	if input.UserID == "" || input.HotelID <= 0 {
		return nil, fmt.Errorf("%w: user and hotel are required", ErrInvalidOrder)
	}
	if input.Adults < 1 || input.Children < 0 {
		return nil, fmt.Errorf("%w: at least one adult is required", ErrInvalidOrder)
	}
	if len(input.Rooms) == 0 {
		return nil, fmt.Errorf("%w: select at least one room", ErrInvalidOrder)
	}

	checkIn, checkOut, err := utils.ParseStay(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	s := &stay{
		checkIn:  checkIn,
		checkOut: checkOut,
		nights:   utils.NightsBetween(checkIn, checkOut),
		counts:   make(map[int64]int, len(input.Rooms)),
	}
	for _, line := range input.Rooms {
		if line.Count < 1 {
			return nil, fmt.Errorf("%w: room count must be positive", ErrInvalidOrder)
		}
		if _, seen := s.counts[line.RoomTypeID]; !seen {
			s.order = append(s.order, line.RoomTypeID)
		}
		s.counts[line.RoomTypeID] += line.Count
	}
	return s, nil
}

// PlaceOrder reserves the rooms, charges the guest and stores the order. The
// reservation is taken before the charge and given back if the checkout fails.
func (s *DefaultOrderService) PlaceOrder(ctx context.Context, input models.PlaceOrderInput) (*models.Order, error) {
	st, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	release, err := s.claimIdempotencyKey(ctx, input)
	if err != nil {
		return nil, err
	}
	order, charged, err := s.placeOrder(ctx, input, st)
	if err != nil {
		// Once money has moved the key stays claimed, so a retry cannot charge twice.
		if !charged {
			release()
		}
		return nil, err
	}
	return order, nil
}

// claimIdempotencyKey reserves the checkout key. The returned release frees it
// so a failed checkout can be retried. Cache outages skip the check.
func (s *DefaultOrderService) claimIdempotencyKey(ctx context.Context, input models.PlaceOrderInput) (func(), error) {
	noop := func() {}
	if input.IdempotencyKey == "" || s.Idempotency == nil {
		return noop, nil
	}

	key := "orders:idempotency:" + input.IdempotencyKey
	ok, err := s.Idempotency.SetNX(ctx, key, input.UserID, idempotencyTTL)
	if err != nil {
		s.Logger.Warn("Idempotency check unavailable", zap.Error(err))
		return noop, nil
	}
	if !ok {
		return nil, ErrDuplicateOrder
	}
	return func() {
		if err := s.Idempotency.Del(context.WithoutCancel(ctx), key); err != nil {
			s.Logger.Warn("Failed to release idempotency key", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

// chargeKey is the payment provider's idempotency key for a checkout.
func chargeKey(input models.PlaceOrderInput) string {
	if input.IdempotencyKey == "" {
		return ""
	}
	return "checkout:" + input.UserID + ":" + input.IdempotencyKey
}

// placeOrder reports whether the guest was charged alongside any error.
func (s *DefaultOrderService) placeOrder(ctx context.Context, input models.PlaceOrderInput, st *stay) (*models.Order, bool, error) {
	snap, err := s.Resolver.Resolve(ctx, input.HotelID, st.checkIn, st.checkOut, true)
	if err != nil {
		return nil, false, err
	}
	byID := make(map[int64]models.RoomType, len(snap.RoomTypes))
	for _, rt := range snap.RoomTypes {
		byID[rt.ID] = rt
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          input.UserID,
		HotelID:         input.HotelID,
		CheckInDate:     utils.FormatDate(st.checkIn),
		CheckOutDate:    utils.FormatDate(st.checkOut),
		Nights:          st.nights,
		AdultCount:      input.Adults,
		ChildCount:      input.Children,
		GuestName:       strings.TrimSpace(input.GuestName),
		GuestPhone:      input.GuestPhone,
		SpecialRequests: input.SpecialRequests,
		Status:          models.OrderStatusPaid,
	}

	capacity := 0
	for _, id := range st.order {
		rt, ok := byID[id]
		if !ok {
			return nil, false, fmt.Errorf("%w: room type %d does not belong to hotel %d", ErrInvalidOrder, id, input.HotelID)
		}
		count := st.counts[id]
		if count > snap.Availability[id] {
			return nil, false, fmt.Errorf("%w: %s has %d left", ErrRoomUnavailable, rt.Name, snap.Availability[id])
		}
		capacity += rt.MaxGuests * count
		order.TotalAmount += rt.Price * float64(count) * float64(st.nights)
		order.Rooms = append(order.Rooms, models.OrderRoom{
			RoomTypeID:        id,
			RoomTypeName:      rt.Name,
			RoomPricePerNight: rt.Price,
			Quantity:          count,
		})
	}
	if guests := input.Adults + input.Children; capacity < guests {
		return nil, false, fmt.Errorf("%w: selected rooms sleep %d, party is %d", ErrInvalidOrder, capacity, guests)
	}

	nights := tasks.LedgerLines(order.Rooms, utils.StayDates(st.checkIn, st.checkOut))
	if err := s.Inventory.AdjustBooked(ctx, nights); err != nil {
		if errors.Is(err, inventoryRepo.ErrInsufficientStock) {
			return nil, false, fmt.Errorf("%w: %w", ErrRoomUnavailable, err)
		}
		return nil, false, fmt.Errorf("failed to reserve rooms: %w", err)
	}

	ref, err := s.Payments.Charge(ctx, ChargeRequest{
		OrderID:        order.ID,
		UserID:         order.UserID,
		IdempotencyKey: chargeKey(input),
		Amount:         order.TotalAmount,
		Currency:       s.Currency,
		PaymentMethod:  input.PaymentMethod,
		Description:    fmt.Sprintf("Hotel %d, %s to %s", order.HotelID, order.CheckInDate, order.CheckOutDate),
	})
	if err != nil {
		s.releaseNights(ctx, order.ID, nights)
		return nil, false, err
	}
	order.PaymentRef = ref
	order.PaidAmount = order.TotalAmount
	order.CreatedAt = s.Now().UTC()

	if err := s.Repo.Create(ctx, order); err != nil {
		s.Logger.Error("Order paid but not stored, refunding", zap.String("order", order.ID), zap.String("payment", ref), zap.Error(err))
		s.refundUnstored(ctx, order)
		s.releaseNights(ctx, order.ID, nights)
		return nil, true, fmt.Errorf("failed to store order: %w", err)
	}

	s.Logger.Info("Order placed",
		zap.String("order", order.ID), zap.Int64("hotel", order.HotelID), zap.Float64("total", order.TotalAmount))
	return order, true, nil
}

func (s *DefaultOrderService) refundUnstored(ctx context.Context, order *models.Order) {
	_, err := s.Payments.Refund(context.WithoutCancel(ctx), RefundRequest{
		OrderID:    order.ID,
		PaymentRef: order.PaymentRef,
		Amount:     order.PaidAmount,
	})
	if err != nil {
		s.Logger.Error("Refund of unstored order failed, needs manual repair",
			zap.String("order", order.ID), zap.String("payment", order.PaymentRef), zap.Error(err))
	}
}

// releaseNights gives reserved rooms back. booked holds the positive deltas
// that were reserved. A release that fails for any reason other than a count
// guard is handed to the ledger worker.
func (s *DefaultOrderService) releaseNights(ctx context.Context, orderID string, booked []models.InventoryIncrement) {
	ctx = context.WithoutCancel(ctx)
	lines := make([]models.InventoryIncrement, len(booked))
	for i, line := range booked {
		lines[i] = models.InventoryIncrement{RoomTypeID: line.RoomTypeID, Date: line.Date, Delta: -line.Delta}
	}

	err := s.Inventory.AdjustBooked(ctx, lines)
	if err == nil {
		return
	}
	if errors.Is(err, inventoryRepo.ErrInsufficientStock) || s.Ledger == nil {
		s.Logger.Error("Room release failed, booked counts need manual repair", zap.String("order", orderID), zap.Error(err))
		return
	}
	s.Logger.Warn("Room release failed, queueing", zap.String("order", orderID), zap.Error(err))
	payload := models.InventoryLedgerPayload{OrderID: orderID, Lines: lines}
	if qerr := s.Ledger.EnqueueInventoryIncrement(ctx, payload); qerr != nil {
		s.Logger.Error("Room release lost, booked counts need manual repair", zap.String("order", orderID), zap.Error(qerr))
	}
}

// ownedOrder loads a visible order of userID.
func (s *DefaultOrderService) ownedOrder(ctx context.Context, id, userID string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, orderRepo.ErrOrderNotFound
	}
	return order, nil
}

// RefundOrder returns a paid order's money and puts its rooms back on sale.
// The status flip happens first so concurrent requests refund at most once.
func (s *DefaultOrderService) RefundOrder(ctx context.Context, id, userID string) (*models.Order, error) {
	order, err := s.ownedOrder(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPaid {
		return nil, fmt.Errorf("%w: order is %s", ErrNotRefundable, order.Status)
	}

	if err := s.Repo.UpdateStatus(ctx, id, models.OrderStatusPaid, models.OrderStatusRefunded, ""); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: order changed concurrently", ErrNotRefundable)
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	ref, err := s.Payments.Refund(ctx, RefundRequest{OrderID: order.ID, PaymentRef: order.PaymentRef, Amount: order.PaidAmount})
	if err != nil {
		if rerr := s.Repo.UpdateStatus(context.WithoutCancel(ctx), id, models.OrderStatusRefunded, models.OrderStatusPaid, ""); rerr != nil {
			s.Logger.Error("Failed to restore order after refund failure", zap.String("order", id), zap.Error(rerr))
		}
		return nil, err
	}
	if err := s.Repo.UpdateStatus(ctx, id, models.OrderStatusRefunded, models.OrderStatusRefunded, ref); err != nil {
		s.Logger.Warn("Failed to record refund reference", zap.String("order", id), zap.String("refund", ref), zap.Error(err))
	}

	checkIn, checkOut, err := utils.ParseStay(order.CheckInDate, order.CheckOutDate)
	if err != nil {
		s.Logger.Error("Refunded order has unreadable dates", zap.String("order", id), zap.Error(err))
	} else {
		s.releaseNights(ctx, order.ID, tasks.LedgerLines(order.Rooms, utils.StayDates(checkIn, checkOut)))
	}

	order.Status = models.OrderStatusRefunded
	order.RefundRef = ref
	s.Logger.Info("Order refunded", zap.String("order", id), zap.Float64("amount", order.PaidAmount))
	return order, nil
}

// DeleteOrder hides an order from the guest's list. Paid orders keep their
// rooms; refund first to release them.
func (s *DefaultOrderService) DeleteOrder(ctx context.Context, id, userID string) error {
	if err := s.Repo.SoftDelete(ctx, id, userID); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (s *DefaultOrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if order.Deleted {
		return nil, orderRepo.ErrOrderNotFound
	}
	return order, nil
}

func (s *DefaultOrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
