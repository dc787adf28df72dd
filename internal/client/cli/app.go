package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/shopkeeper/internal/client/api"
	"github.com/dmitrijs2005/shopkeeper/internal/client/config"
)

var (
	ErrUsage   = errors.New("usage: client [-a url] [-token tok] register|login|products|product <id>|health")
	ErrNoToken = errors.New("no token: run login, then pass -token or set SHOP_TOKEN")
)

type App struct {
	config *config.Config
	api    *api.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		api:    api.New(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "products", "list":
		return a.products(ctx)
	case "product", "get":
		if len(rest) != 1 {
			return fmt.Errorf("usage: product <id>")
		}
		return a.product(ctx, rest[0])
	case "health":
		return a.health(ctx)
	case "help":
		fmt.Fprintln(a.out, ErrUsage.Error())
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, ErrUsage)
	}
}

// readCredentials prompts for the username and the password. The password
// bytes are wiped before returning.
func (a *App) readCredentials() (string, string, error) {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return "", "", err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return "", "", err
	}
	defer wipe(password)

	return userName, string(password), nil
}

func (a *App) register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}

	u, err := a.api.Register(ctx, userName, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d)\n", u.UserName, u.ID)
	return nil
}

func (a *App) login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}

	s, err := a.api.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (id %d)\n", s.UserName, s.UserID)
	fmt.Fprintf(a.out, "Token: %s\n", s.Token)
	fmt.Fprintf(a.out, "export SHOP_TOKEN=%s\n", s.Token)
	return nil
}

func (a *App) authed() (*api.Client, error) {
	if a.config.Token == "" {
		return nil, ErrNoToken
	}
	return a.api.WithToken(a.config.Token), nil
}

func (a *App) products(ctx context.Context) error {
	c, err := a.authed()
	if err != nil {
		return err
	}

	list, err := c.Products(ctx)
	if err != nil {
		return sessionHint(err)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, p := range list.Products {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, p.Price)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%d product(s)", list.Total)
	if list.User != nil {
		fmt.Fprintf(a.out, ", requested by %s", list.User.UserName)
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *App) product(ctx context.Context, rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", rawID)
	}

	c, err := a.authed()
	if err != nil {
		return err
	}

	p, err := c.Product(ctx, id)
	if err != nil {
		return sessionHint(err)
	}

	fmt.Fprintf(a.out, "#%d %s  %s\n", p.ID, p.Name, p.Price)
	return nil
}

func (a *App) health(ctx context.Context) error {
	h, err := a.api.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", h.Status, h.Timestamp)
	return nil
}

func sessionHint(err error) error {
	if api.IsUnauthorized(err) {
		return fmt.Errorf("%w (log in again to get a fresh token)", err)
	}
	return err
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
