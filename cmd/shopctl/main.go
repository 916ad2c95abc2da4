// Command shopctl is a terminal storefront: it browses the catalog, keeps a
// local cart and checks it out against the API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"codespace-shop/internal/cart"
	"codespace-shop/internal/checkout"
	"codespace-shop/internal/logger"
	"codespace-shop/internal/money"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const usage = `usage: shopctl [flags] <command>

commands:
  products                 list the catalog
  add <slug> [quantity]    add a product to the cart
  remove <slug>            remove a product from the cart
  clear                    empty the cart
  show                     print the cart
  checkout <email>         place the order for the current cart
`

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", envOr("SHOP_API_URL", "http://localhost:8080"), "storefront API base url")
	cartDir := flag.String("cart-dir", defaultCartDir(), "directory for the local cart file")
	redisAddr := flag.String("redis", os.Getenv("REDIS_ADDR"), "keep the cart in redis instead of a file")
	owner := flag.String("owner", envOr("USER", "guest"), "cart owner when using redis")
	currency := flag.String("currency", envOr("PAYMENT_CURRENCY", money.DefaultCurrency), "currency used to display prices")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage); flag.PrintDefaults() }
	flag.Parse()

	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	storage, closeStorage := newCartStorage(*redisAddr, *owner, *cartDir)
	defer closeStorage()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := cart.NewStore(storage)
	if err := store.Load(ctx); err != nil {
		logger.L().Fatal("failed to load cart", zap.Error(err))
	}

	a := &app{api: newAPIClient(*apiURL), cart: store, out: os.Stdout, currency: *currency}
	if err := a.run(ctx, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

const redisCartTTL = 30 * 24 * time.Hour

// newCartStorage keeps the cart in redis when an address is given, otherwise
// in a file under dir.
func newCartStorage(redisAddr, owner, dir string) (cart.Storage, func()) {
	if redisAddr == "" {
		return cart.NewFileStorage(dir), func() {}
	}
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	return cart.NewRedisStorage(client, owner, redisCartTTL), func() { _ = client.Close() }
}

type app struct {
	api      *apiClient
	cart     *cart.Store
	out      io.Writer
	currency string
}

func (a *app) price(cents int64) string {
	return money.FormatCentsIn(cents, a.currency)
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "products":
		return a.products(ctx)
	case "add":
		if len(rest) < 1 || len(rest) > 2 {
			return errUsage
		}
		qty := 1
		if len(rest) == 2 {
			n, err := strconv.Atoi(rest[1])
			if err != nil {
				return fmt.Errorf("quantity must be a whole number: %q", rest[1])
			}
			qty = n
		}
		return a.add(ctx, rest[0], qty)
	case "remove":
		if len(rest) != 1 {
			return errUsage
		}
		return a.remove(ctx, rest[0])
	case "clear":
		if err := a.cart.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "cart cleared")
		return nil
	case "show":
		a.show()
		return nil
	case "checkout":
		if len(rest) != 1 {
			return errUsage
		}
		return a.checkout(ctx, rest[0])
	default:
		return errUsage
	}
}

func (a *app) products(ctx context.Context) error {
	products, err := a.api.listProducts(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tNAME\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Slug, p.Name, a.price(p.PriceCents))
	}
	return tw.Flush()
}

func (a *app) add(ctx context.Context, slug string, qty int) error {
	if qty <= 0 {
		return cart.ErrInvalidQuantity
	}

	p, err := a.api.getProduct(ctx, slug)
	if err != nil {
		return fmt.Errorf("%s: %w", slug, err)
	}
	if err := a.cart.Add(ctx, p, qty); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "added %d x %s\n", qty, p.Name)
	return nil
}

func (a *app) remove(ctx context.Context, slug string) error {
	for _, it := range a.cart.Items() {
		if it.Product.Slug == slug || it.Product.ID == slug {
			if err := a.cart.Remove(ctx, it.Product.ID); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "removed %s\n", it.Product.Name)
			return nil
		}
	}
	fmt.Fprintf(a.out, "%s is not in the cart\n", slug)
	return nil
}

func (a *app) show() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "cart is empty")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			it.Product.Name, it.Quantity,
			a.price(it.Product.PriceCents),
			a.price(it.SubtotalCents()),
		)
	}
	fmt.Fprintf(tw, "TOTAL\t\t\t%s\n", a.price(a.cart.TotalCents()))
	_ = tw.Flush()
}

// checkout sends product ids and quantities only; the server prices them.
// The cart is cleared once the server accepts the order.
func (a *app) checkout(ctx context.Context, email string) error {
	inputs := a.cart.CheckoutItems()
	if len(inputs) == 0 {
		return errors.New("cart is empty")
	}

	req := checkout.Request{Email: email, Items: make([]checkout.RequestItem, 0, len(inputs))}
	for _, in := range inputs {
		req.Items = append(req.Items, checkout.RequestItem{ProductID: in.ProductID, Quantity: in.Quantity})
	}

	res, err := a.api.checkout(ctx, req)
	if err != nil {
		return err
	}
	if err := a.cart.Clear(ctx); err != nil {
		return err
	}

	if res.URL != "" {
		fmt.Fprintf(a.out, "complete payment at: %s\n", res.URL)
		return nil
	}
	fmt.Fprintf(a.out, "order placed: %s\n", res.OrderID)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultCartDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".shopctl"
	}
	return filepath.Join(dir, "codespace-shop")
}
