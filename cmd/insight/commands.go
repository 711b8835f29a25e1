package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"

	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
	"github.com/yogendraft21/insight-code-sub000/integrations"
	"github.com/yogendraft21/insight-code-sub000/token"
)

func printUsage() {
	fmt.Println(`Usage: insight <command> [flags]

Commands:
  login      Sign in with email and password
  logout     Sign out and clear stored credentials
  whoami     Show the current identity and token expiry
  reviews    List recent code reviews
  repos      List connected repositories
  billing    Show subscription and credit balance
  connect    Print the URL to link a GitHub/GitLab account`)
}

func dispatch(app *app, command string, args []string) error {
	ctx := context.Background()

	switch command {
	case "login":
		return loginCommand(ctx, app, args)
	case "logout":
		app.controller.Logout(ctx)
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return whoamiCommand(ctx, app)
	case "reviews":
		return reviewsCommand(ctx, app, args)
	case "repos":
		return reposCommand(ctx, app)
	case "billing":
		return billingCommand(ctx, app)
	case "connect":
		return connectCommand(args)
	case "help", "-h", "--help":
		printUsage()
		return nil
	}
	printUsage()
	return errors.Errorf("unknown command %q", command)
}

// requireSession gates a protected command, naming it so a login prompt can
// tell the user what they were trying to reach.
func requireSession(ctx context.Context, app *app, target string) error {
	if err := app.guard.Require(ctx, target); err != nil {
		if errors.Is(err, clienterrors.ErrLoginRequired) {
			return errors.Errorf("not logged in (run `insight login`, then retry %q)", target)
		}
		return err
	}
	return nil
}

func loginCommand(ctx context.Context, app *app, args []string) error {
	flags := flag.NewFlagSet("login", flag.ContinueOnError)
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password (prompted when omitted)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("login requires -email")
	}

	pass := *password
	if pass == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return errors.Wrap(err, "[loginCommand] read password")
		}
		pass = string(raw)
	}

	if err := app.controller.Login(ctx, *email, pass); err != nil {
		return err
	}
	state := app.controller.Current()
	fmt.Printf("Logged in as %s <%s>\n", state.User.Name, state.User.Email)
	return nil
}

func whoamiCommand(ctx context.Context, app *app) error {
	if err := requireSession(ctx, app, "whoami"); err != nil {
		return err
	}
	state := app.controller.Current()
	fmt.Printf("%s <%s>\n", state.User.Name, state.User.Email)

	if access, err := app.store.Get(token.AccessTokenKey); err == nil {
		if claims, err := token.Inspect(access); err == nil && !claims.ExpiresAt.IsZero() {
			fmt.Printf("Access token expires %s\n", claims.ExpiresAt.Format(time.RFC1123))
		}
		if token.ExpiresWithin(access, time.Minute) {
			fmt.Println("Access token is about to expire; the next request will refresh it.")
		}
	}
	return nil
}

func reviewsCommand(ctx context.Context, app *app, args []string) error {
	flags := flag.NewFlagSet("reviews", flag.ContinueOnError)
	limit := flags.Int("limit", 10, "number of reviews to list")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := requireSession(ctx, app, "reviews"); err != nil {
		return err
	}

	list, err := app.client.ListReviews(ctx, *limit)
	if err != nil {
		return err
	}
	for _, review := range list.Reviews {
		fmt.Printf("%-12s  PR #%-5d  %-9s  %d issues  %s\n",
			review.ID, review.PullRequest, review.Status, review.IssueCount,
			review.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("%d of %d reviews\n", len(list.Reviews), list.Total)
	return nil
}

func reposCommand(ctx context.Context, app *app) error {
	if err := requireSession(ctx, app, "repos"); err != nil {
		return err
	}
	repos, err := app.client.ListRepositories(ctx)
	if err != nil {
		return err
	}
	for _, repo := range repos {
		status := "inactive"
		if repo.Active {
			status = "active"
		}
		fmt.Printf("%-8s  %-40s  %s\n", repo.Provider, repo.FullName, status)
	}
	return nil
}

func billingCommand(ctx context.Context, app *app) error {
	if err := requireSession(ctx, app, "billing"); err != nil {
		return err
	}

	sub, err := app.client.GetSubscription(ctx)
	if err != nil {
		return err
	}
	balance, err := app.client.GetCreditBalance(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Plan: %s (%s)\n", sub.Plan, sub.Status)
	fmt.Printf("Credits: %d remaining, %d used, resets %s\n",
		balance.Remaining, balance.Used, balance.ResetsAt.Format("2006-01-02"))
	return nil
}

func connectCommand(args []string) error {
	flags := flag.NewFlagSet("connect", flag.ContinueOnError)
	provider := flags.String("provider", "github", "github or gitlab")
	clientID := flags.String("client-id", "", "OAuth app client ID")
	redirect := flags.String("redirect", "", "callback URL registered with the provider")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *clientID == "" || *redirect == "" {
		return errors.New("connect requires -client-id and -redirect")
	}

	state := fmt.Sprintf("insight-%d", time.Now().UnixNano())
	url, err := integrations.ConnectURL(integrations.Provider(*provider), *clientID, *redirect, state)
	if err != nil {
		return err
	}
	fmt.Println("Open this URL to authorize access:")
	fmt.Println(url)
	return nil
}
