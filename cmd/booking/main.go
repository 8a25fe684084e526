// Command booking is a terminal host for the buy-tickets tool.  It calls
// the tool server, feeds the result to the booking wizard and drives the
// wizard from stdin until the user opens the checkout page or quits.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/billetweb-booking/internal/tool"
	"github.com/iliyamo/billetweb-booking/internal/wizard"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	host := &toolClient{
		BaseURL: getenv("BOOKING_API_URL", "http://localhost:8080"),
		Secret:  os.Getenv("HOST_JWT_SECRET"),
		HostID:  getenv("BOOKING_HOST_ID", "booking-cli"),
	}
	opener := wizard.Opener(printOpener{out: os.Stdout})
	if envBool("BOOKING_OPEN_BROWSER") {
		opener = browserOpener{printOpener{out: os.Stdout}}
	}

	w := wizard.New(wizard.BrandingFrom(tool.DefaultProfile()))
	_ = wizard.Render(os.Stdout, w.View())

	res, err := host.Call(ctx, tool.BuyTicketsName)
	if err != nil {
		log.Fatalf("booking: %v", err)
	}
	w.Load(&res.Meta)
	for _, n := range res.StructuredContent.AvailabilityNotes {
		fmt.Println(n)
	}

	if err := run(ctx, w, os.Stdin, os.Stdout, opener); err != nil && !errors.Is(err, io.EOF) {
		log.Fatalf("booking: %v", err)
	}
}

// run reads one command per line and applies it to w.  It returns nil after
// a successful handoff or "q", io.EOF when input ends.
func run(ctx context.Context, w *wizard.Wizard, in io.Reader, out io.Writer, opener wizard.Opener) error {
	sc := bufio.NewScanner(in)
	for {
		if err := wizard.Render(out, w.View()); err != nil {
			return err
		}
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			return io.EOF
		}
		cmd := strings.TrimSpace(sc.Text())
		var err error
		switch cmd {
		case "":
			continue
		case "q":
			return nil
		case "n":
			err = w.Start()
		case "b":
			err = w.Back()
		case "o":
			if err = w.Handoff(ctx, opener); err == nil {
				return nil
			}
		default:
			n, convErr := strconv.Atoi(cmd)
			if convErr != nil {
				fmt.Fprintf(out, "commande inconnue : %q\n", cmd)
				continue
			}
			err = choose(w, n)
		}
		if err != nil {
			fmt.Fprintln(out, message(err))
		}
	}
}

// choose selects the n-th (1-based) date or tier on the current screen.
func choose(w *wizard.Wizard, n int) error {
	v := w.View()
	switch v.Step {
	case wizard.StepDateSelection:
		if n < 1 || n > len(v.Dates) {
			return wizard.ErrUnknownSession
		}
		return w.SelectSession(v.Dates[n-1].ID)
	case wizard.StepTierSelection:
		if n < 1 || n > len(v.Tiers) {
			return wizard.ErrUnknownTier
		}
		return w.SelectTier(v.Tiers[n-1].ID)
	default:
		return wizard.ErrWrongStep
	}
}

func message(err error) string {
	switch {
	case errors.Is(err, wizard.ErrSessionSoldOut):
		return "Cette séance est complète."
	case errors.Is(err, wizard.ErrUnknownSession):
		return "Date inconnue."
	case errors.Is(err, wizard.ErrUnknownTier):
		return "Tarif inconnu."
	case errors.Is(err, wizard.ErrWrongStep):
		return "Action impossible à cette étape."
	case errors.Is(err, wizard.ErrNotReady):
		return wizard.LoadingLabel
	default:
		return err.Error()
	}
}

type printOpener struct {
	out io.Writer
}

func (p printOpener) OpenExternal(_ context.Context, url string) error {
	_, err := fmt.Fprintf(p.out, "Billetterie : %s\n", url)
	return err
}

// browserOpener also launches the platform URL opener.
type browserOpener struct {
	printOpener
}

func (b browserOpener) OpenExternal(ctx context.Context, url string) error {
	if err := b.printOpener.OpenExternal(ctx, url); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}
	return cmd.Start()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
