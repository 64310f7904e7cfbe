package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hackgods/appointment-agenda/internal/appointment"
)

var (
	// ErrInvalidOption marks input that is not the number a prompt asked
	// for. The menu loop reports it and carries on.
	ErrInvalidOption = errors.New("invalid option")

	// ErrInputFailed means the input stream is closed or broken.
	ErrInputFailed = errors.New("console input failed")
)

const rule = "+------------------------------------+"

type Console struct {
	in  *bufio.Reader
	out io.Writer
	svc *appointment.Service
	log zerolog.Logger

	// lines is fed by a single reader goroutine so a prompt can give up
	// waiting when done closes.
	lines     chan string
	startRead sync.Once
	readErr   error
	done      <-chan struct{}
	doneErr   func() error
}

func New(in io.Reader, out io.Writer, svc *appointment.Service, log zerolog.Logger) *Console {
	return &Console{
		in:    bufio.NewReader(in),
		out:   out,
		svc:   svc,
		log:   log.With().Str("session", uuid.NewString()).Logger(),
		lines: make(chan string),
	}
}

// Run shows the menu until the user picks 0. It returns nil on a normal exit,
// an error wrapping ErrInputFailed when input can no longer be read, and the
// context's error as soon as ctx is cancelled, even mid-prompt.
func (c *Console) Run(ctx context.Context) error {
	c.done, c.doneErr = ctx.Done(), ctx.Err

	if c.svc.Fresh() {
		c.printf("A new appointment store has been created.\n\n")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		option, err := c.menu()
		if err == nil {
			if option == 0 {
				break
			}
			err = c.dispatch(ctx, option)
		}

		switch {
		case err == nil:
		case ctx.Err() != nil:
			c.log.Info().Err(ctx.Err()).Msg("console interrupted")
			c.printf("\nInterrupted. Shutting down.\n")
			return ctx.Err()
		case errors.Is(err, ErrInvalidOption):
			c.log.Debug().Err(err).Msg("invalid input")
			c.printf("You entered an invalid option. Check your input.\n\n")
		default:
			c.log.Error().Err(err).Msg("console stopped")
			c.printf("An input/output error occurred and the system cannot talk to the user.\nShutting down.\n")
			return err
		}
	}

	c.printf("Thank you for using the appointment system.\n")
	return nil
}

func (c *Console) menu() (int, error) {
	c.printf("%s\n\nMedical appointments\n%s\n\n", rule, rule)
	c.printf("Select an option:\n")
	c.printf("\t1) Book new appointments\n" +
		"\t2) Save all appointments to storage\n" +
		"\t3) Pending appointments by medic\n" +
		"\t4) Appointment history by patient\n" +
		"\t5) Appointments by day\n\n" +
		"\t0) Exit\n\n>> ")
	return c.readInt()
}

func (c *Console) dispatch(ctx context.Context, option int) error {
	switch option {
	case 1:
		_, err := c.CreateAppointments()
		return err
	case 2:
		c.ExportAppointments(ctx)
		return nil
	case 3:
		return c.ReportByMedic()
	case 4:
		return c.ReportByPatient()
	case 5:
		return c.ReportByDay()
	default:
		return ErrInvalidOption
	}
}

// ExportAppointments saves the store. When the save fails every appointment
// is printed so nothing is lost with the session.
func (c *Console) ExportAppointments(ctx context.Context) {
	if err := c.svc.Export(ctx); err != nil {
		c.log.Error().Err(err).Msg("export failed")
		c.printf("The appointments could not be saved because of a storage read/write error.\nPrinting all appointments:\n\n")
		for _, d := range c.svc.All() {
			c.printf("%s\n", d)
		}
		c.printf("\n")
		return
	}
	c.printf("Appointments saved to storage successfully.\n\n")
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// readLine returns one line without its terminator. A final line without a
// newline is still returned; an empty read at EOF is an input failure.
func (c *Console) readLine() (string, error) {
	c.startRead.Do(func() { go c.readLines() })

	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", c.readErr
		}
		return line, nil
	case <-c.done:
		return "", c.doneErr()
	}
}

func (c *Console) readLines() {
	for {
		line, err := c.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && line != "" {
				c.lines <- strings.TrimRight(line, "\r\n")
			}
			c.readErr = fmt.Errorf("%w: %v", ErrInputFailed, err)
			close(c.lines)
			return
		}
		c.lines <- strings.TrimRight(line, "\r\n")
	}
}

func (c *Console) readInt() (int, error) {
	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	return parseInt(line)
}

func (c *Console) readID() (int64, error) {
	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	return parseID(line)
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOption, s)
	}
	return n, nil
}

func parseID(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOption, s)
	}
	return n, nil
}
