package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"pet-marketplace/internal/client"

	"golang.org/x/term"
)

const defaultAPI = "http://localhost:8080"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("petctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apiURL := fs.String("api", envOr("PETCTL_API", defaultAPI), "Base URL of the marketplace API")
	sessionPath := fs.String("session", "", "Session file (default $PETCTL_SESSION or <config dir>/petctl/session.json)")
	fs.Usage = func() { usage(stderr) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		usage(stdout)
		return errors.New("missing command")
	}

	path := *sessionPath
	if path == "" {
		p, err := client.DefaultSessionPath()
		if err != nil {
			return err
		}
		path = p
	}

	session := client.NewSession(client.FileStore{Path: path})
	if err := session.Hydrate(); err != nil {
		fmt.Fprintf(stderr, "warning: discarded unreadable session: %v\n", err)
	}

	c, err := client.New(*apiURL, session, 10*time.Second)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := &commands{c: c, stdin: stdin, stdout: stdout, stderr: stderr}
	switch rest[0] {
	case "register":
		return cmd.register(ctx, rest[1:])
	case "login":
		return cmd.login(ctx, rest[1:])
	case "logout":
		if err := c.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Logged out")
		return nil
	case "me":
		return cmd.me(ctx)
	case "pets":
		if len(rest) < 2 {
			usage(stdout)
			return errors.New("pets: missing subcommand")
		}
		switch rest[1] {
		case "add":
			return cmd.addPet(ctx, rest[2:])
		case "mine":
			return cmd.myPets(ctx)
		case "all":
			return cmd.allPets(ctx)
		}
		return fmt.Errorf("pets: unknown subcommand %q", rest[1])
	}

	usage(stdout)
	return fmt.Errorf("unknown command %q", rest[0])
}

type commands struct {
	c      *client.Client
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (cmd *commands) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(cmd.stderr)
	name := fs.String("name", "", "Full name")
	email := fs.String("email", "", "Email")
	password := fs.String("password", "", "Password (optional, will prompt if omitted)")
	phone := fs.String("phone", "", "Phone")
	address := fs.String("address", "", "Address")
	userType := fs.String("type", "adopter", "adopter, seller or both")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pw, err := cmd.passwordOrPrompt(*password)
	if err != nil {
		return err
	}

	u, err := cmd.c.Register(ctx, client.RegisterInput{
		Name: *name, Email: *email, Password: pw,
		Phone: *phone, Address: *address, UserType: *userType,
	})
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(cmd.stdout, "Registered %s <%s> as %s\n", u.Name, u.Email, u.UserType)
	return nil
}

func (cmd *commands) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(cmd.stderr)
	email := fs.String("email", "", "Email")
	password := fs.String("password", "", "Password (optional, will prompt if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("login: -email is required")
	}

	pw, err := cmd.passwordOrPrompt(*password)
	if err != nil {
		return err
	}

	u, err := cmd.c.Login(ctx, *email, pw)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(cmd.stdout, "Logged in as %s <%s>\n", u.Name, u.Email)
	return nil
}

func (cmd *commands) me(ctx context.Context) error {
	u, err := cmd.c.Me(ctx)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(cmd.stdout, "%s <%s>\nphone: %s\naddress: %s\ntype: %s\n", u.Name, u.Email, u.Phone, u.Address, u.UserType)
	return nil
}

func (cmd *commands) addPet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pets add", flag.ContinueOnError)
	fs.SetOutput(cmd.stderr)
	in := client.PetInput{}
	fs.StringVar(&in.Name, "name", "", "Pet name")
	fs.StringVar(&in.Type, "type", "", "dog, cat, bird, rabbit or other")
	fs.StringVar(&in.Breed, "breed", "", "Breed")
	fs.StringVar(&in.Age, "age", "", "Age (free text)")
	fs.StringVar(&in.Gender, "gender", "", "male or female")
	fs.StringVar(&in.Description, "description", "", "Description")
	price := fs.Float64("price", 0, "Price")
	forSale := fs.Bool("for-sale", false, "List the pet for sale")
	if err := fs.Parse(args); err != nil {
		return err
	}
	in.Price = price
	in.ForSale = forSale

	p, err := cmd.c.RegisterPet(ctx, in)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(cmd.stdout, "Registered %s (%s) id=%s\n", p.Name, p.Type, p.ID)
	return nil
}

func (cmd *commands) myPets(ctx context.Context) error {
	items, err := cmd.c.MyPets(ctx)
	if err != nil {
		return describe(err)
	}
	return printPets(cmd.stdout, items, false)
}

func (cmd *commands) allPets(ctx context.Context) error {
	items, err := cmd.c.AllPets(ctx)
	if err != nil {
		return describe(err)
	}
	return printPets(cmd.stdout, items, true)
}

func printPets(w io.Writer, items []client.Pet, withOwner bool) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "No pets")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := "NAME\tTYPE\tBREED\tAGE\tGENDER\tPRICE\tFOR SALE"
	if withOwner {
		header += "\tOWNER"
	}
	fmt.Fprintln(tw, header)
	for _, p := range items {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%.2f\t%t", p.Name, p.Type, p.Breed, p.Age, p.Gender, p.Price, p.ForSale)
		if withOwner {
			owner := "-"
			if p.Owner != nil {
				owner = fmt.Sprintf("%s <%s>", p.Owner.Name, p.Owner.Email)
			}
			line += "\t" + owner
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

// describe agrega el detalle por campo de un error de validación.
func describe(err error) error {
	switch {
	case errors.Is(err, client.ErrNotAuthenticated):
		return errors.New("not logged in; run `petctl login` first")
	case errors.Is(err, client.ErrUnresolved):
		return errors.New("session not loaded")
	}
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || len(apiErr.Fields) == 0 {
		return err
	}
	parts := make([]string, 0, len(apiErr.Fields))
	for _, f := range apiErr.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Errorf("%s (%s)", apiErr.Message, strings.Join(parts, "; "))
}

func (cmd *commands) passwordOrPrompt(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(cmd.stdout, "Password: ")
	pw, err := readPassword(cmd.stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(cmd.stdout)
	if strings.TrimSpace(pw) == "" {
		return "", errors.New("password cannot be empty")
	}
	return pw, nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// pipes y tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `Usage: petctl [-api URL] [-session FILE] <command> [flags]

Commands:
  register -name N -email E -phone P -address A [-type adopter|seller|both] [-password PW]
  login -email E [-password PW]
  logout
  me
  pets add -name N -type T -breed B -age A -gender G [-description D] [-price X] [-for-sale]
  pets mine
  pets all

Environment:
  PETCTL_API       API base URL (default http://localhost:8080)
  PETCTL_SESSION   Session file path`)
}
