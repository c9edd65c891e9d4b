// Command proyectoa3 is a terminal client for the event discovery and
// enrollment service: browse and filter events, join and leave them,
// create events and manage a profile.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/config"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/dto"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/filter"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/images"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/logger"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/normalize"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/repository"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/retry"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/service"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/session"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/transport"
)

const usage = `Usage: proyectoa3 <command> [flags]

Commands:
  events            list events, with optional filters
  my-events         list events you are enrolled in
  created-events    list events you created
  join <event-id>   enroll in an event
  leave <event-id>  withdraw from an event
  create            create an event
  signup            register a new account
  login             log in
  logout            log out
  profile           show your profile
  update-profile    update your profile
`

// app bundles the wired dependencies every command needs.
type app struct {
	cfg        *config.Config
	events     repository.EventRepository
	profiles   repository.ProfileRepository
	enrollment *service.EnrollmentService
	auth       *service.AuthService
	sessions   session.Store
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(&logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	a, err := wire(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// One timeout per top-level action; every request inherits it so a
	// hung call cannot block the command forever.
	ctx, cancel := context.WithTimeout(context.Background(), 3*cfg.HTTP.Timeout)
	defer cancel()

	if err := run(ctx, a, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", renderError(err))
		os.Exit(1)
	}
}

func wire(cfg *config.Config) (*app, error) {
	sessions, err := session.NewFileStore(cfg.Client.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	log := logger.Get()
	client := transport.New(cfg.API.BaseURL, cfg.HTTP.Timeout, log)
	auth := service.NewAuthService(client, sessions, log)

	var events repository.EventRepository
	var profiles repository.ProfileRepository
	if cfg.API.UseMocks {
		events = repository.NewMockEventRepository()
		profiles = repository.NewMockProfileRepository()
	} else {
		resolver := images.NewPoolResolver(cfg.Client.ImagePoolDir, "")
		n := normalize.New(resolver, log)
		retrier := retry.New(&retry.Config{MaxRetries: cfg.HTTP.ReadRetries})
		events = repository.NewHTTPEventRepository(client, sessions, n, retrier, log)
		profiles = repository.NewHTTPProfileRepository(client, sessions)
	}

	return &app{
		cfg:        cfg,
		events:     events,
		profiles:   profiles,
		enrollment: service.NewEnrollmentService(events, log),
		auth:       auth,
		sessions:   sessions,
	}, nil
}

func run(ctx context.Context, a *app, command string, args []string) error {
	switch command {
	case "events":
		return cmdEvents(ctx, a, args)
	case "my-events":
		return cmdMyEvents(ctx, a)
	case "created-events":
		return cmdCreatedEvents(ctx, a)
	case "join":
		return cmdJoin(ctx, a, args)
	case "leave":
		return cmdLeave(ctx, a, args)
	case "create":
		return cmdCreate(ctx, a, args)
	case "signup":
		return cmdSignup(ctx, a, args)
	case "login":
		return cmdLogin(ctx, a, args)
	case "logout":
		return a.auth.Logout()
	case "profile":
		return cmdProfile(ctx, a)
	case "update-profile":
		return cmdUpdateProfile(ctx, a, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func cmdEvents(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	search := fs.String("search", "", "text to match in name or description")
	location := fs.String("location", "", "location substring")
	language := fs.String("language", "", "language code, e.g. es")
	maxPersons := fs.Int("max-persons", -1, "maximum event capacity")
	tags := fs.String("tags", "", "comma-separated tags, any match")
	if err := fs.Parse(args); err != nil {
		return err
	}

	events, err := a.events.ListEvents(ctx)
	if err != nil {
		return err
	}

	spec := filter.Spec{
		SearchText: *search,
		Location:   *location,
		Language:   *language,
	}
	if *maxPersons >= 0 {
		spec.MaxPersons = maxPersons
	}
	if *tags != "" {
		spec.Tags = splitList(*tags)
	}

	printEvents(filter.Apply(events, spec))
	return nil
}

func cmdMyEvents(ctx context.Context, a *app) error {
	events, err := a.events.ListMyEvents(ctx)
	if err != nil {
		return err
	}

	// The agenda splits into upcoming and past, like the browser client.
	now := time.Now()
	var upcoming, past []domain.Event
	for _, ev := range events {
		if ev.StartDate.Before(now) {
			past = append(past, ev)
		} else {
			upcoming = append(upcoming, ev)
		}
	}

	if len(upcoming) > 0 {
		fmt.Printf("Próximos eventos (%d)\n", len(upcoming))
		printEvents(upcoming)
	}
	if len(past) > 0 {
		fmt.Printf("Eventos pasados (%d)\n", len(past))
		printEvents(past)
	}
	if len(events) == 0 {
		fmt.Println("Todavía no tienes eventos guardados.")
	}
	return nil
}

func cmdCreatedEvents(ctx context.Context, a *app) error {
	events, err := a.events.ListCreatedEvents(ctx)
	if err != nil {
		return err
	}
	printEvents(events)
	return nil
}

func cmdJoin(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: proyectoa3 join <event-id>")
	}
	ev, err := findEvent(ctx, a, args[0])
	if err != nil {
		return err
	}

	outcome, err := a.enrollment.Join(ctx, *ev)
	if err != nil {
		return err
	}
	if outcome.AlreadyEnrolled {
		fmt.Println("Ya estabas inscrito en este evento.")
	} else {
		fmt.Println("Te has apuntado al evento.")
	}
	return nil
}

func cmdLeave(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: proyectoa3 leave <event-id>")
	}
	ev, err := findEvent(ctx, a, args[0])
	if err != nil {
		return err
	}

	if _, err := a.enrollment.Leave(ctx, *ev); err != nil {
		return err
	}
	fmt.Println("Te has desapuntado del evento.")
	return nil
}

func cmdCreate(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "event title (required)")
	date := fs.String("date", "", "date, YYYY-MM-DD (required)")
	hour := fs.String("time", "10:00", "time, HH:mm")
	location := fs.String("location", "", "location (required)")
	description := fs.String("description", "", "description")
	tags := fs.String("tags", "", "comma-separated tags")
	minAge := fs.String("min-age", "", "minimum age restriction")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := &dto.CreateEventRequest{
		Titulo:        *title,
		Descripcion:   *description,
		Fecha:         *date,
		Hora:          *hour,
		Lugar:         *location,
		Tags:          splitList(*tags),
		Restricciones: map[string]string{},
	}
	if *minAge != "" {
		req.Restricciones["edadMinima"] = *minAge
	}

	created, err := a.events.CreateEvent(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Evento creado con id %s.\n", created.ID)
	return nil
}

func cmdSignup(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	username := fs.String("username", "", "username (required)")
	email := fs.String("email", "", "email (required)")
	password := fs.String("password", "", "password (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.auth.Signup(ctx, dto.SignupRequest{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Cuenta creada: %s\n", resp.Username)
	return nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("user", "", "username or email (required)")
	password := fs.String("password", "", "password (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.auth.Login(ctx, dto.LoginRequest{
		UsernameOrEmail: *user,
		Password:        *password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Sesión iniciada como %s\n", resp.Username)
	return nil
}

func cmdProfile(ctx context.Context, a *app) error {
	sess, err := a.sessions.Current()
	if err != nil {
		return err
	}
	if sess == nil {
		return domain.ErrAuthRequired
	}

	profile, err := a.profiles.GetProfile(ctx, sess.UserID)
	if err != nil {
		return err
	}
	fmt.Printf("Usuario:      %s\n", profile.Username)
	fmt.Printf("Email:        %s\n", profile.Email)
	if profile.Name != "" || profile.Surname != "" {
		fmt.Printf("Nombre:       %s %s\n", profile.Name, profile.Surname)
	}
	if profile.Description != "" {
		fmt.Printf("Descripción:  %s\n", profile.Description)
	}

	if stats, err := a.profiles.GetStats(ctx, sess.UserID); err == nil {
		fmt.Printf("Inscrito en:  %d eventos\n", stats.EventsJoined)
		fmt.Printf("Creados:      %d eventos\n", stats.EventsCreated)
	}
	return nil
}

func cmdUpdateProfile(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("update-profile", flag.ExitOnError)
	name := fs.String("name", "", "first name")
	surname := fs.String("surname", "", "surname")
	description := fs.String("description", "", "profile description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := a.sessions.Current()
	if err != nil {
		return err
	}
	if sess == nil {
		return domain.ErrAuthRequired
	}

	profile, err := a.profiles.UpdateProfile(ctx, sess.UserID, &dto.UpdateProfileRequest{
		Name:        *name,
		Surname:     *surname,
		Description: *description,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Perfil actualizado: %s\n", profile.Username)
	return nil
}

// findEvent fetches the current listing and locates the event so the
// enrollment pre-checks run against the freshest available view.
func findEvent(ctx context.Context, a *app, eventID string) (*domain.Event, error) {
	events, err := a.events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == eventID {
			return &events[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrEventNotFound, eventID)
}

func printEvents(events []domain.Event) {
	if len(events) == 0 {
		fmt.Println("No hay eventos que mostrar.")
		return
	}
	for _, ev := range events {
		state := " "
		if ev.IsEnrolled {
			state = "*"
		}
		fmt.Printf("%s [%s] %s | %s | %s | %d/%d plazas | %s\n",
			state, ev.ID, ev.StartDate.Format("2006-01-02 15:04"), ev.Name,
			ev.Location, len(ev.Participants), ev.Capacity,
			strings.Join(ev.Languages, ","))
		if ev.Restrictions != "" {
			fmt.Printf("    %s\n", ev.Restrictions)
		}
	}
}

// renderError maps the error taxonomy to the user-facing banners the
// browser client showed.
func renderError(err error) string {
	var netErr *transport.NetworkError
	switch {
	case errors.Is(err, domain.ErrAuthRequired), errors.Is(err, domain.ErrSessionExpired):
		return "Necesitas iniciar sesión. Usa: proyectoa3 login"
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return "Ya estás inscrito en este evento."
	case errors.Is(err, domain.ErrNotEnrolled):
		return "No estás inscrito en este evento."
	case errors.Is(err, domain.ErrEventFull):
		return "Este evento ya está completo."
	case errors.As(err, &netErr):
		return "No se pudo conectar con el servidor. Inténtalo de nuevo."
	default:
		return err.Error()
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
