package service

import (
	"context"
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypewear-studio/canvas"
	"hypewear-studio/models"
)

// fakeCartRepo keeps carts in memory
type fakeCartRepo struct {
	carts  map[int64]*models.CartResponse
	nextID int64
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[int64]*models.CartResponse{}, nextID: 1}
}

func (f *fakeCartRepo) addCart(status string) int64 {
	id := f.nextID
	f.nextID++
	f.carts[id] = &models.CartResponse{Cart: models.Cart{ID: id, Status: status}}
	return id
}

func (f *fakeCartRepo) Create(ctx context.Context) (*models.Cart, error) {
	id := f.addCart("open")
	return &f.carts[id].Cart, nil
}

func (f *fakeCartRepo) GetWithLines(ctx context.Context, id int64) (*models.CartResponse, error) {
	cart, ok := f.carts[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "cart", ID: fmt.Sprint(id)}
	}
	// Copy so service-side reads do not alias repo state
	out := *cart
	out.Lines = append([]models.CartLine(nil), cart.Lines...)
	return &out, nil
}

func (f *fakeCartRepo) AddStandardLine(ctx context.Context, cartID int64, product *models.Product, qty int) (*models.CartLine, error) {
	line := models.CartLine{
		ID: f.nextID, CartID: cartID, ProductID: product.ID,
		Qty: qty, UnitPrice: product.Price,
		ProductSKU: product.SKU, ProductName: product.Name,
	}
	f.nextID++
	f.carts[cartID].Lines = append(f.carts[cartID].Lines, line)
	return &line, nil
}

func (f *fakeCartRepo) AddCustomLine(ctx context.Context, cartID int64, design *models.CartCustomDesign) (*models.CartLine, error) {
	line := models.CartLine{ID: f.nextID, CartID: cartID, Qty: 1, UnitPrice: 0, CustomDesign: design}
	f.nextID++
	f.carts[cartID].Lines = append(f.carts[cartID].Lines, line)
	return &line, nil
}

func (f *fakeCartRepo) RemoveLine(ctx context.Context, cartID, lineID int64) error {
	cart := f.carts[cartID]
	for i, l := range cart.Lines {
		if l.ID == lineID {
			cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
			return nil
		}
	}
	return &models.NotFoundError{Resource: "cart line", ID: fmt.Sprint(lineID)}
}

func (f *fakeCartRepo) Clear(ctx context.Context, cartID int64) error {
	f.carts[cartID].Lines = nil
	return nil
}

func (f *fakeCartRepo) MarkOrdered(ctx context.Context, cartID int64) error {
	f.carts[cartID].Status = "ordered"
	return nil
}

// fakeProductRepo serves a fixed catalog
type fakeProductRepo struct {
	products map[int64]models.Product
}

func (f *fakeProductRepo) List(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if !activeOnly || p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, &models.NotFoundError{Resource: "product", ID: fmt.Sprint(id)}
	}
	return &p, nil
}

// fakeOrderRepo mimics the transactional order repository: the order and its
// design commit together or not at all
type fakeOrderRepo struct {
	orders     []models.Order
	designs    []models.CustomDesign
	fail       bool
	failDesign bool
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, customer models.CustomerInfo, lines []models.CartLine, design *models.CustomDesign) (*models.Order, *models.CustomDesign, error) {
	if f.fail {
		return nil, nil, fmt.Errorf("order insert failed")
	}
	if design != nil && f.failDesign {
		// Design insert fails inside the transaction: the order rolls back too
		return nil, nil, fmt.Errorf("failed to persist design: connection reset")
	}
	var total int64
	for _, l := range lines {
		total += int64(l.Qty) * l.UnitPrice
	}
	order := models.Order{ID: int64(len(f.orders) + 1), Status: "submitted", CustomerName: customer.Name, Total: total}
	f.orders = append(f.orders, order)

	var attached *models.CustomDesign
	if design != nil {
		out := *design
		out.ID = int64(len(f.designs) + 1)
		out.OrderID = order.ID
		f.designs = append(f.designs, out)
		attached = &out
	}
	return &order, attached, nil
}

// fakeRenderer returns fixed artifacts without touching real rasters
type fakeRenderer struct{}

func (fakeRenderer) Render(state *models.DesignState, showBack bool, sizePx int) (image.Image, error) {
	return image.NewNRGBA(image.Rect(0, 0, sizePx, sizePx)), nil
}

func (fakeRenderer) RenderPNG(state *models.DesignState, showBack bool, sizePx int) ([]byte, error) {
	side := "front"
	if showBack {
		side = "back"
	}
	return []byte("png-" + side), nil
}

// fakeFinalizer records calls and optionally fails
type fakeFinalizer struct {
	calls int
	fail  bool
}

func (f *fakeFinalizer) FinalizeDesign(ctx context.Context, snapshot *models.CartCustomDesign) (*models.CustomDesign, error) {
	f.calls++
	if f.fail {
		return nil, &models.UploadError{Name: "design-front.png", Err: fmt.Errorf("storage unavailable")}
	}
	return &models.CustomDesign{
		FrontImageURL: "https://storage.example.com/design-front.png",
		BaseColor:     snapshot.Design.BaseColor,
		Size:          snapshot.Design.Size,
		Elements:      snapshot.Design.Elements,
	}, nil
}

type cartFixture struct {
	carts     *fakeCartRepo
	products  *fakeProductRepo
	orders    *fakeOrderRepo
	studio    *StudioService
	finalizer *fakeFinalizer
	svc       *CartService
}

func newCartFixture() *cartFixture {
	f := &cartFixture{
		carts: newFakeCartRepo(),
		products: &fakeProductRepo{products: map[int64]models.Product{
			1: {ID: 1, SKU: "TEE-BLK-M", Name: "Core Logo Tee", Price: 3500, IsActive: true},
			2: {ID: 2, SKU: "HOOD-GRY-L", Name: "Retired Hoodie", Price: 6500, IsActive: false},
		}},
		orders:    &fakeOrderRepo{},
		studio:    NewStudioService(),
		finalizer: &fakeFinalizer{},
	}
	f.svc = NewCartService(f.carts, f.products, f.orders, f.studio, fakeRenderer{}, f.finalizer)
	return f
}

// openSession opens a studio session holding one front text element
func (f *cartFixture) openSession(t *testing.T) string {
	t.Helper()
	id := f.studio.Open()
	require.NoError(t, f.studio.With(id, func(s *canvas.Session) {
		s.AddText()
	}))
	return id
}

func TestAddStandardItemRejectsInvalidQty(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")

	_, err := f.svc.AddStandardItem(context.Background(), cartID, &models.AddCartItemRequest{ProductID: 1, Qty: 0})
	var vErr *models.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestAddStandardItemRejectsInactiveProduct(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")

	_, err := f.svc.AddStandardItem(context.Background(), cartID, &models.AddCartItemRequest{ProductID: 2, Qty: 1})
	var vErr *models.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestAddStandardItemBlockedByCustomDesign(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")
	sessionID := f.openSession(t)

	_, err := f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{
		SessionID: sessionID, BaseColor: "#1A1A1A", Size: "M",
	})
	require.NoError(t, err)

	_, err = f.svc.AddStandardItem(context.Background(), cartID, &models.AddCartItemRequest{ProductID: 1, Qty: 1})
	var cErr *models.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "custom", cErr.Blocking)

	// The failed add left the cart untouched
	cart, _ := f.carts.GetWithLines(context.Background(), cartID)
	require.Len(t, cart.Lines, 1)
	assert.True(t, cart.Lines[0].IsCustom())
}

func TestAddStandardItemHappyPath(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")

	line, err := f.svc.AddStandardItem(context.Background(), cartID, &models.AddCartItemRequest{ProductID: 1, Qty: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, line.Qty)
	assert.Equal(t, int64(3500), line.UnitPrice)
	assert.Equal(t, "TEE-BLK-M", line.ProductSKU)
	assert.False(t, line.IsCustom())
}

func TestAddCustomDesignRequiresGarmentSelection(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")
	sessionID := f.openSession(t)

	var vErr *models.ValidationError

	_, err := f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{SessionID: sessionID, Size: "M"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "baseColor", vErr.Field)

	_, err = f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{SessionID: sessionID, BaseColor: "#1A1A1A"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "size", vErr.Field)
}

func TestAddCustomDesignBlockedByStandardItems(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")
	sessionID := f.openSession(t)

	_, err := f.svc.AddStandardItem(context.Background(), cartID, &models.AddCartItemRequest{ProductID: 1, Qty: 1})
	require.NoError(t, err)

	_, err = f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{
		SessionID: sessionID, BaseColor: "#1A1A1A", Size: "M",
	})
	var cErr *models.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "standard", cErr.Blocking)
}

func TestAddCustomDesignRejectsSecondCustom(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")

	_, err := f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{
		SessionID: f.openSession(t), BaseColor: "#1A1A1A", Size: "M",
	})
	require.NoError(t, err)

	_, err = f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{
		SessionID: f.openSession(t), BaseColor: "#FFFFFF", Size: "L",
	})
	var cErr *models.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "custom", cErr.Blocking)
}

func TestAddCustomDesignUnknownSession(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")

	_, err := f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{
		SessionID: "no-such-session", BaseColor: "#1A1A1A", Size: "M",
	})
	var nfErr *models.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestAddCustomDesignRejectsEmptyDesign(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")
	sessionID := f.studio.Open() // no elements added

	_, err := f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{
		SessionID: sessionID, BaseColor: "#1A1A1A", Size: "M",
	})
	var vErr *models.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestAddCustomDesignSnapshotsAndRendersPreviews(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")

	sessionID := f.studio.Open()
	require.NoError(t, f.studio.With(sessionID, func(s *canvas.Session) {
		s.AddText()
		s.SwitchSide(models.SideBack)
		s.AddText()
	}))

	line, err := f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{
		SessionID: sessionID, BaseColor: "#1A1A1A", Size: "M", Notes: "both sides",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), line.UnitPrice) // unpriced pending quotation
	require.True(t, line.IsCustom())
	assert.Equal(t, "#1A1A1A", line.CustomDesign.Design.BaseColor)
	assert.Equal(t, "M", line.CustomDesign.Design.Size)
	assert.Equal(t, "both sides", line.CustomDesign.Design.Notes)
	assert.Len(t, line.CustomDesign.Design.Elements, 2)

	// Both sides carry elements, so both previews render
	assert.Equal(t, pngDataURI([]byte("png-front")), line.CustomDesign.FrontPreview)
	assert.Equal(t, pngDataURI([]byte("png-back")), line.CustomDesign.BackPreview)

	// The snapshot is a copy: clearing the studio later leaves the line intact
	require.NoError(t, f.studio.With(sessionID, func(s *canvas.Session) { s.Clear() }))
	cart, _ := f.carts.GetWithLines(context.Background(), cartID)
	assert.Len(t, cart.Lines[0].CustomDesign.Design.Elements, 2)
}

func TestAddCustomDesignFrontOnlySkipsBackPreview(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")
	sessionID := f.openSession(t)

	line, err := f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{
		SessionID: sessionID, BaseColor: "#1A1A1A", Size: "M",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, line.CustomDesign.FrontPreview)
	assert.Empty(t, line.CustomDesign.BackPreview)
}

func TestCheckoutRejectsEmptyOrClosedCart(t *testing.T) {
	f := newCartFixture()
	req := &models.CheckoutRequest{CustomerName: "Ana Reyes"}

	emptyID := f.carts.addCart("open")
	_, err := f.svc.Checkout(context.Background(), emptyID, req)
	var vErr *models.ValidationError
	assert.ErrorAs(t, err, &vErr)

	closedID := f.carts.addCart("ordered")
	_, err = f.svc.Checkout(context.Background(), closedID, req)
	assert.ErrorAs(t, err, &vErr)
}

func TestCheckoutFinalizationFailurePreservesCart(t *testing.T) {
	f := newCartFixture()
	f.finalizer.fail = true
	cartID := f.carts.addCart("open")

	_, err := f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{
		SessionID: f.openSession(t), BaseColor: "#1A1A1A", Size: "M",
	})
	require.NoError(t, err)

	_, err = f.svc.Checkout(context.Background(), cartID, &models.CheckoutRequest{CustomerName: "Ana Reyes"})
	require.Error(t, err)
	var upErr *models.UploadError
	assert.ErrorAs(t, err, &upErr)

	// Nothing persisted, cart open with its line intact for retry
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.orders.designs)
	cart, _ := f.carts.GetWithLines(context.Background(), cartID)
	assert.Equal(t, "open", cart.Status)
	assert.Len(t, cart.Lines, 1)
}

func TestCheckoutDesignPersistFailureLeavesNoOrder(t *testing.T) {
	f := newCartFixture()
	f.orders.failDesign = true
	cartID := f.carts.addCart("open")

	_, err := f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{
		SessionID: f.openSession(t), BaseColor: "#1A1A1A", Size: "M",
	})
	require.NoError(t, err)

	_, err = f.svc.Checkout(context.Background(), cartID, &models.CheckoutRequest{CustomerName: "Ana Reyes"})
	require.Error(t, err)

	// The order transaction rolled back: no submitted order without its
	// design row, and the cart stays open for a clean retry.
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.orders.designs)
	cart, _ := f.carts.GetWithLines(context.Background(), cartID)
	assert.Equal(t, "open", cart.Status)
	assert.Len(t, cart.Lines, 1)
}

func TestCheckoutCustomDesignHappyPath(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")

	_, err := f.svc.AddCustomDesign(context.Background(), cartID, &models.AddCustomDesignRequest{
		SessionID: f.openSession(t), BaseColor: "#1A1A1A", Size: "M",
	})
	require.NoError(t, err)

	resp, err := f.svc.Checkout(context.Background(), cartID, &models.CheckoutRequest{CustomerName: "Ana Reyes"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.finalizer.calls)
	assert.Equal(t, "submitted", resp.Order.Status)
	assert.Equal(t, "Ana Reyes", resp.Order.CustomerName)
	assert.Equal(t, int64(0), resp.Order.Total) // custom lines are unpriced

	require.Len(t, f.orders.designs, 1)
	assert.Equal(t, resp.Order.ID, f.orders.designs[0].OrderID)
	assert.Equal(t, f.orders.designs[0].ID, resp.DesignID)

	cart, _ := f.carts.GetWithLines(context.Background(), cartID)
	assert.Equal(t, "ordered", cart.Status)
}

func TestCheckoutStandardOnlySkipsFinalization(t *testing.T) {
	f := newCartFixture()
	cartID := f.carts.addCart("open")

	_, err := f.svc.AddStandardItem(context.Background(), cartID, &models.AddCartItemRequest{ProductID: 1, Qty: 2})
	require.NoError(t, err)

	resp, err := f.svc.Checkout(context.Background(), cartID, &models.CheckoutRequest{CustomerName: "Ana Reyes"})
	require.NoError(t, err)

	assert.Equal(t, 0, f.finalizer.calls)
	assert.Equal(t, int64(7000), resp.Order.Total)
	assert.Zero(t, resp.DesignID)
	assert.Empty(t, f.orders.designs)
}
