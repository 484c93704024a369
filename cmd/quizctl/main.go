// Command quizctl drives a quiz portal session from the terminal against the configured store.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"quiz-portal/internal/auth"
	"quiz-portal/internal/backend"
	"quiz-portal/internal/config"
	"quiz-portal/internal/models"
	"quiz-portal/internal/quiz"
	"quiz-portal/internal/session"
	"quiz-portal/pkg/latency"
)

var errNotSignedIn = errors.New("not signed in")

type cli struct {
	Config    string `short:"c" long:"config" description:"config file name under ./configs"`
	NoLatency bool   `long:"no-latency" description:"skip simulated round trips"`
	Verbose   bool   `short:"v" long:"verbose" description:"log to stderr"`

	out     io.Writer
	backend *backend.Backend
}

type env struct {
	log     *zap.Logger
	session *session.Session
	quizzes *quiz.Service
}

func main() {
	if err := run(os.Args[1:], os.Stdout, nil); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

// run parses args and executes one command. A nil b opens the configured backend.
func run(args []string, out io.Writer, b *backend.Backend) error {
	c := &cli{out: out, backend: b}
	parser := flags.NewParser(c, flags.Default)

	commands := []struct {
		name, short string
		cmd         flags.Commander
	}{
		{"login", "Sign in with email and password", &loginCommand{cli: c}},
		{"register", "Create an account and sign in", &registerCommand{cli: c}},
		{"whoami", "Show the signed-in account", &whoamiCommand{cli: c}},
		{"logout", "Forget the stored session", &logoutCommand{cli: c}},
		{"quizzes", "List quizzes", &quizzesCommand{cli: c}},
	}
	for _, cmd := range commands {
		if _, err := parser.AddCommand(cmd.name, cmd.short, "", cmd.cmd); err != nil {
			return err
		}
	}

	_, err := parser.ParseArgs(args)
	return err
}

func (c *cli) open(ctx context.Context) (*env, func(), error) {
	cfg, err := config.Init(c.Config)
	if err != nil {
		return nil, nil, err
	}

	log := zap.NewNop()
	if c.Verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			return nil, nil, err
		}
	}

	closer := func() { log.Sync() }
	b := c.backend
	if b == nil {
		if b, err = backend.Open(ctx, cfg, log); err != nil {
			return nil, nil, err
		}
		if b.Driver() == backend.DriverMemory {
			log.Warn("memory store does not outlive this command")
		}
		closer = func() {
			b.Close()
			log.Sync()
		}
	}

	repo, err := auth.NewRepository(bcrypt.DefaultCost)
	if err != nil {
		closer()
		return nil, nil, err
	}

	lat := latency.New(cfg.Latency.Enabled && !c.NoLatency)
	local := b.Store(cfg.Store.Namespace)
	quizzes := quiz.NewService(quiz.NewRepository(local, nil), log, lat, nil)
	client := auth.NewService(repo, local, quizzes, log, auth.Options{TokenTTL: cfg.Token.TTL, Latency: lat})

	s := session.New(client, local, b.Store(cfg.Store.Namespace+":session"), session.Options{
		Navigate: func(path string) { fmt.Fprintf(c.out, "redirect %s\n", path) },
		Log:      log,
	})
	return &env{log: log, session: s, quizzes: quizzes}, closer, nil
}

// withSession bootstraps the stored session before calling fn.
func (c *cli) withSession(fn func(ctx context.Context, e *env) error) error {
	ctx := context.Background()
	e, closer, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer closer()

	if err := e.session.Bootstrap(ctx); err != nil {
		return err
	}
	return fn(ctx, e)
}

func (c *cli) printAccount(a models.Account) {
	fmt.Fprintf(c.out, "%s <%s> id=%d role=%s\n", a.Name, a.Email, a.ID, a.Role)
}

type loginCommand struct {
	cli *cli

	Email    string `short:"e" long:"email" description:"account email" required:"true"`
	Password string `short:"p" long:"password" description:"account password" required:"true"`
}

func (cmd *loginCommand) Execute([]string) error {
	return cmd.cli.withSession(func(ctx context.Context, e *env) error {
		if err := e.session.Login(ctx, cmd.Email, cmd.Password); err != nil {
			return err
		}
		account, _ := e.session.Account()
		cmd.cli.printAccount(account)
		return nil
	})
}

type registerCommand struct {
	cli *cli

	Name     string `short:"n" long:"name" description:"display name"`
	Email    string `short:"e" long:"email" description:"account email" required:"true"`
	Password string `short:"p" long:"password" description:"account password" required:"true"`
	Role     string `short:"r" long:"role" description:"account role" default:"student" choice:"student" choice:"teacher"`
}

func (cmd *registerCommand) Execute([]string) error {
	return cmd.cli.withSession(func(ctx context.Context, e *env) error {
		err := e.session.Register(ctx, models.Registration{
			Name:     cmd.Name,
			Email:    cmd.Email,
			Password: cmd.Password,
			Role:     models.Role(cmd.Role),
		})
		if err != nil {
			return err
		}
		account, _ := e.session.Account()
		cmd.cli.printAccount(account)
		return nil
	})
}

type whoamiCommand struct {
	cli *cli
}

func (cmd *whoamiCommand) Execute([]string) error {
	return cmd.cli.withSession(func(_ context.Context, e *env) error {
		account, ok := e.session.Account()
		if !ok {
			return errNotSignedIn
		}
		cmd.cli.printAccount(account)
		return nil
	})
}

type logoutCommand struct {
	cli *cli
}

func (cmd *logoutCommand) Execute([]string) error {
	return cmd.cli.withSession(func(ctx context.Context, e *env) error {
		return e.session.Logout(ctx)
	})
}

type quizzesCommand struct {
	cli *cli
}

func (cmd *quizzesCommand) Execute([]string) error {
	return cmd.cli.withSession(func(ctx context.Context, e *env) error {
		if e.session.State() != session.Authenticated {
			return errNotSignedIn
		}
		resp, err := e.quizzes.GetQuizzes(ctx)
		if err != nil {
			return err
		}
		if !resp.Success {
			return resp.Error
		}

		w := tabwriter.NewWriter(cmd.cli.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tDIFFICULTY\tMINUTES\tQUESTIONS")
		for _, q := range *resp.Data {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\n", q.ID, q.Title, q.Category, q.Difficulty, q.TimeLimit, q.QuestionsCount)
		}
		return w.Flush()
	})
}
