// Package menu implements the interactive console front end: show and clear
// the log file, and run frequency selection against one device.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RMahshie/scanlist/internal/automation"
	"github.com/RMahshie/scanlist/internal/device"
	"github.com/RMahshie/scanlist/internal/logging"
	"github.com/RMahshie/scanlist/internal/netutil"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

const banner = "\nProgram Menu\n\n1. Show Logs\n2. Clear Logs\n3. Run Automation\n4. Quit\n"

// Menu reads choices from its input until Quit is chosen or input ends.
type Menu struct {
	service automation.Service
	logPath string
	input   io.Reader
	lines   *bufio.Scanner
	out     io.Writer

	// ReadPassword reads a password without echo. The default reads from a
	// terminal when the input is one, otherwise the next input line.
	ReadPassword func() (string, error)
	// LocalIP reports the address logged for the operator's machine.
	LocalIP func() string
}

// New creates a menu bound to svc and the log file at logPath
func New(svc automation.Service, logPath string, in io.Reader, out io.Writer) *Menu {
	m := &Menu{
		service: svc,
		logPath: logPath,
		input:   in,
		lines:   bufio.NewScanner(in),
		out:     out,
		LocalIP: netutil.LocalIP,
	}
	m.ReadPassword = m.terminalPassword
	return m
}

// Run displays the menu and responds to choices.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, banner+"\n")

		choice, err := m.prompt("Enter an Option: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			m.showLogs()
		case "2":
			m.clearLogs()
		case "3":
			m.runAutomation(ctx)
		case "4":
			fmt.Fprintln(m.out, "Thank you for using")
			return nil
		default:
			fmt.Fprintf(m.out, "%s is not a valid choice\n", choice)
		}
	}
}

func (m *Menu) showLogs() {
	logs, err := logging.Read(m.logPath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to show logs")
		return
	}
	fmt.Fprintln(m.out, logs)
}

func (m *Menu) clearLogs() {
	if err := logging.Clear(m.logPath); err != nil {
		log.Error().Err(err).Msg("Failed to clear logs")
		return
	}
	fmt.Fprintln(m.out, "*** Logs Successfully Cleared ***")
	log.Info().Msg("*** Logs Successfully Cleared ***")
}

func (m *Menu) runAutomation(ctx context.Context) {
	defer func() {
		log.Info().Msgf("%s the process has been finished", m.LocalIP())
		fmt.Fprintln(m.out, "the process has been finished")
	}()

	host, err := m.prompt("Please Enter IP Address: ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to read address")
		return
	}
	if _, err := netutil.ValidateIPv4(host); err != nil {
		m.report(err)
		return
	}

	username, err := m.prompt("Username: ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to read username")
		return
	}
	fmt.Fprint(m.out, "Password: ")
	password, err := m.ReadPassword()
	if err != nil {
		log.Error().Err(err).Msg("Failed to read password")
		return
	}

	log.Info().Str("host", host).Msgf("%s login to %s, the process is starting", m.LocalIP(), host)

	run, err := m.service.Run(ctx, device.Credentials{
		Host:     host,
		Username: username,
		Password: password,
	})
	if err != nil {
		m.report(err)
		return
	}

	scanList := ""
	if run.ScanList != nil {
		scanList = *run.ScanList
	}
	log.Info().Str("run_id", run.ID).Str("scan_list", scanList).Msg("Scan-list applied")
	fmt.Fprintln(m.out, "*** Automation Successfully Done ***")
}

// report logs a failed run and tells the operator what went wrong.
func (m *Menu) report(err error) {
	var invalid *netutil.InvalidAddressError
	if errors.As(err, &invalid) {
		log.Error().Msg(invalid.Error())
		fmt.Fprintf(m.out, "%s is invalid\n", invalid.Address)
		return
	}
	log.Error().Err(err).Str("outcome", automation.Outcome(err)).Msg("Automation failed")
	fmt.Fprintln(m.out, err)
}

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	return m.readLine()
}

func (m *Menu) readLine() (string, error) {
	if !m.lines.Scan() {
		if err := m.lines.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.lines.Text()), nil
}

func (m *Menu) terminalPassword() (string, error) {
	if f, ok := m.input.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(m.out)
		return string(password), err
	}
	return m.readLine()
}
