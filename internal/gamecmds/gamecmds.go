// Package gamecmds is the game's console registration list: the server
// settings exposed as console variables and the commands that drive a
// session.
package gamecmds

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tcconsole/internal/console"
)

// Settings holds the values bound to console variables.
type Settings struct {
	GameName       string
	MaxPlayers     int
	Scene          string
	AuthCleanNames bool
	DebugMenu      bool
}

// DefaultSettings returns the settings a fresh game starts with.
func DefaultSettings() *Settings {
	return &Settings{
		GameName:       "Team-Capture Game",
		MaxPlayers:     16,
		Scene:          "dm_ditch",
		AuthCleanNames: true,
	}
}

// Session tracks the run mode and the network parameters the console
// commands change. Session is safe for concurrent use.
type Session struct {
	logger *zap.Logger

	mu      sync.Mutex
	mode    console.RunMode
	address string
	scene   string
}

// NewSession creates a Session in mode.
//
// Precondition: logger must be non-nil.
func NewSession(mode console.RunMode, logger *zap.Logger) *Session {
	return &Session{logger: logger, mode: mode, address: "localhost"}
}

// Mode returns the current run mode. It is suitable as console.Options.Mode.
func (s *Session) Mode() console.RunMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Address returns the address the server listens on.
func (s *Session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

// Scene returns the scene the running server was started with, or "" when
// no server is running.
func (s *Session) Scene() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// StartServer switches the session to server mode on scene.
//
// Postcondition: Returns an error when a server is already running.
func (s *Session) StartServer(scene string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == console.RunModeServer {
		return fmt.Errorf("server already running on %q", s.scene)
	}
	s.mode = console.RunModeServer
	s.scene = scene
	s.logger.Info("server started", zap.String("scene", scene), zap.String("address", s.address))
	return nil
}

func (s *Session) setAddress(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = addr
}

// Register adds the game's variables and commands to b.
//
// Graphics-only entries are skipped by b when it is headless. Registration
// rejections are collected and returned together.
//
// Precondition: b, s, session and logger must be non-nil.
func Register(b *console.Builder, s *Settings, session *Session, logger *zap.Logger) error {
	var errs []error
	note := func(err error) {
		errs = append(errs, err)
	}

	note(b.Variable(console.StringVar("sv_gamename", "Sets the game name", &s.GameName)))
	note(b.Variable(console.IntVar("sv_maxplayers", "How many players do we support", &s.MaxPlayers)))
	note(b.Variable(console.StringVar("sv_scene", "Sets what scene to use on the server", &s.Scene)))
	note(b.Variable(console.BoolVar("sv_auth_clean_names",
		"Will trim whitespace at the start and end of account names", &s.AuthCleanNames)))

	debug := console.BoolVar("cl_debugmenu", "Shows the debug menu", &s.DebugMenu)
	debug.GraphicsOnly = true
	note(b.Variable(debug))

	note(b.Command(console.Command{
		Name:       "startserver",
		Summary:    "Starts a server",
		Permission: console.PermissionClientOnly,
		MinArgs:    1,
		MaxArgs:    1,
		Handler: func(args []string) error {
			return session.StartServer(args[0])
		},
	}))
	note(b.Command(console.Command{
		Name:       "gamename",
		Summary:    "Sets the game name",
		Permission: console.PermissionServerOnly,
		MinArgs:    1,
		Handler: func(args []string) error {
			s.GameName = strings.Join(args, " ")
			logger.Info("game name was set", zap.String("name", s.GameName))
			return nil
		},
	}))
	note(b.Command(console.Command{
		Name:       "sv_address",
		Summary:    "Sets the server's address",
		Permission: console.PermissionServerOnly,
		MinArgs:    1,
		MaxArgs:    1,
		Handler: func(args []string) error {
			session.setAddress(args[0])
			logger.Info("server address was set", zap.String("address", args[0]))
			return nil
		},
	}))

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("registering game commands: %w", err)
	}
	return nil
}
