// Command cityhop is a terminal client for the CityHop API, covering both
// the consumer surface and the back-office surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-password/password"

	"cityhop/api"
	"cityhop/config"
	"cityhop/internal/logging"
	"cityhop/keystore"
	"cityhop/models"
	"cityhop/services/accounts"
	"cityhop/services/achievements"
	"cityhop/services/businesses"
	"cityhop/services/coupons"
	"cityhop/services/missions"
	"cityhop/services/places"
	"cityhop/services/pointsconfig"
	"cityhop/services/session"
	"cityhop/services/stickers"
	syncsvc "cityhop/services/sync"
	"cityhop/utils"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: cityhop [-realm consumer|admin] <command> [flags]

commands:
  login      -email -password
  register   -name -email [-password | -suggest-password]
  logout
  whoami
  update     [-name] [-city] [-country] [-avatar file]
  coupons    [-search] [-status]
  missions   [-search]
  places     [-search | -near lat,lng]
  businesses [-search]
  accounts   [-search]            (admin realm)
  achievements [-tier]            (admin realm)
  stickers   [-rarity] [-number]  (admin realm)
  points     [-simulate action -quantity n]  (admin realm)
  sync
  ping`)
}

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  *api.Client
	session *session.Service
}

func run(args []string) error {
	global := flag.NewFlagSet("cityhop", flag.ExitOnError)
	realmName := global.String("realm", "consumer", "API surface to use: consumer or admin")
	global.Usage = usage
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{Debug: cfg.Debug, File: cfg.LogFile})
	slog.SetDefault(logger)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	realm := session.Consumer
	if *realmName == "admin" {
		realm = session.Admin
	} else if *realmName != "consumer" {
		return fmt.Errorf("unknown realm %q", *realmName)
	}

	client := api.NewClient(cfg.BaseURL, api.WithTimeout(cfg.Timeout), api.WithLogger(logger))
	a := &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		session: session.New(client, store, realm, session.WithLogger(logger)),
	}

	ctx := context.Background()
	command, rest := global.Arg(0), global.Args()[1:]

	switch command {
	case "login":
		return a.login(ctx, rest)
	case "register":
		return a.register(ctx, rest)
	case "logout":
		return a.session.Logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "update":
		return a.update(ctx, rest)
	case "coupons":
		return a.listCoupons(ctx, rest)
	case "missions":
		return a.listMissions(ctx, rest)
	case "places":
		return a.listPlaces(ctx, rest)
	case "businesses":
		return a.listBusinesses(ctx, rest)
	case "accounts":
		return a.listAccounts(ctx, rest)
	case "achievements":
		return a.listAchievements(ctx, rest)
	case "stickers":
		return a.listStickers(ctx, rest)
	case "points":
		return a.points(ctx, rest)
	case "sync":
		return a.sync(ctx)
	case "ping":
		return a.ping(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// openStore builds the configured keystore backend, wrapped in a sealing
// layer when a passphrase is set.
func openStore(cfg *config.Config) (keystore.Store, func(), error) {
	var (
		store   keystore.Store
		closeFn = func() {}
		err     error
	)

	switch cfg.Storage {
	case config.StorageSQLite:
		var s *keystore.SQLite
		if s, err = keystore.NewSQLite(cfg.StorePath); err == nil {
			store, closeFn = s, func() { _ = s.Close() }
		}
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		store, closeFn = keystore.NewRedis(client), func() { _ = client.Close() }
	default:
		store, err = keystore.NewFile(cfg.StorePath)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}

	if cfg.StorePassphrase != "" {
		sealed, err := keystore.NewSealed(store, cfg.StorePassphrase)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		store = sealed
	}
	return store, closeFn, nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	pass := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *pass == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	profile, err := a.session.Login(ctx, models.Credentials{Email: *email, Password: *pass})
	if err != nil {
		return presentable(err)
	}
	fmt.Printf("signed in as %s <%s>\n", profile.Name, profile.Email)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	pass := fs.String("password", "", "account password")
	suggest := fs.Bool("suggest-password", false, "generate a strong password instead of -password")
	city := fs.String("city", "", "home city")
	country := fs.String("country", "", "home country")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" {
		return fmt.Errorf("register requires -name and -email")
	}

	if *suggest {
		generated, err := password.Generate(20, 4, 4, false, false)
		if err != nil {
			return fmt.Errorf("generate password: %w", err)
		}
		*pass = generated
		fmt.Printf("generated password: %s\n", generated)
	}
	if *pass == "" {
		return fmt.Errorf("register requires -password or -suggest-password")
	}

	profile, err := a.session.Register(ctx, models.Registration{
		Name:     *name,
		Email:    *email,
		Password: *pass,
		City:     *city,
		Country:  *country,
	})
	if err != nil {
		return presentable(err)
	}
	fmt.Printf("welcome, %s\n", profile.Name)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if !a.session.IsAuthenticated(ctx) {
		fmt.Println("not signed in")
		return nil
	}

	profile, err := a.session.Profile(ctx)
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Println("signed in (profile not cached)")
		return nil
	}

	fmt.Printf("%s <%s>\n", profile.Name, profile.Email)
	if profile.Role != "" {
		fmt.Printf("role: %s\n", profile.Role)
	}
	if profile.City != "" {
		fmt.Printf("city: %s\n", profile.City)
	}

	if info, err := a.session.TokenInfo(ctx); err == nil && !info.ExpiresAt.IsZero() {
		fmt.Printf("session expires: %s\n", info.ExpiresAt.Format(time.RFC1123))
	}
	return nil
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	name := fs.String("name", "", "new display name")
	city := fs.String("city", "", "new home city")
	country := fs.String("country", "", "new home country")
	avatar := fs.String("avatar", "", "path to a png or jpeg avatar image")
	if err := fs.Parse(args); err != nil {
		return err
	}

	update := models.ProfileUpdate{Name: *name, City: *city, Country: *country}
	if *avatar != "" {
		data, err := os.ReadFile(*avatar)
		if err != nil {
			return fmt.Errorf("read avatar: %w", err)
		}
		encoded, err := utils.EncodeAvatar(data, utils.DefaultAvatarMaxDim)
		if err != nil {
			return err
		}
		update.AvatarURL = encoded
	}

	profile, err := a.session.UpdateProfile(ctx, update)
	if err != nil {
		return presentable(err)
	}
	fmt.Printf("profile updated: %s\n", profile.Name)
	return nil
}

func (a *app) listCoupons(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("coupons", flag.ExitOnError)
	search := fs.String("search", "", "search text")
	status := fs.String("status", "", "filter by status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := coupons.NewService(a.client).List(ctx, coupons.ListFilters{Search: *search, Status: *status})
	if err != nil {
		return presentable(err)
	}
	for _, c := range list.Coupons {
		fmt.Printf("%s\t%s\t%s\n", c.Code, c.Title, c.Status)
	}
	fmt.Printf("%d total\n", list.Pagination.Total)
	return nil
}

func (a *app) listMissions(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("missions", flag.ExitOnError)
	search := fs.String("search", "", "search text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := missions.NewService(a.client).List(ctx, missions.ListFilters{Search: *search})
	if err != nil {
		return presentable(err)
	}
	for _, m := range list.Missions {
		fmt.Printf("%s\t%d pts\n", m.Title, m.Points)
	}
	fmt.Printf("%d total\n", list.Pagination.Total)
	return nil
}

func (a *app) listPlaces(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("places", flag.ExitOnError)
	search := fs.String("search", "", "search text")
	near := fs.String("near", "", "lat,lng to list nearby places")
	radius := fs.Int("radius", 2000, "nearby search radius in meters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := places.NewService(a.client)

	if *near != "" {
		lat, lng, err := parseCoords(*near)
		if err != nil {
			return err
		}
		nearby, err := svc.Nearby(ctx, lat, lng, *radius)
		if err != nil {
			return presentable(err)
		}
		for _, p := range nearby {
			fmt.Printf("%s\t%s\n", p.Name, p.Category)
		}
		return nil
	}

	list, err := svc.List(ctx, places.ListFilters{Search: *search})
	if err != nil {
		return presentable(err)
	}
	for _, p := range list.Places {
		fmt.Printf("%s\t%s\n", p.Name, p.Category)
	}
	fmt.Printf("%d total\n", list.Pagination.Total)
	return nil
}

func (a *app) listBusinesses(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("businesses", flag.ExitOnError)
	search := fs.String("search", "", "search text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := businesses.NewService(a.client).List(ctx, businesses.ListFilters{Search: *search})
	if err != nil {
		return presentable(err)
	}
	for _, b := range list.Businesses {
		fmt.Printf("%s\t%s\t%s\n", b.Name, b.Category, b.Approval)
	}
	fmt.Printf("%d total\n", list.Pagination.Total)
	return nil
}

func (a *app) listAccounts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("accounts", flag.ExitOnError)
	search := fs.String("search", "", "search text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := accounts.NewService(a.client).List(ctx, accounts.ListFilters{Search: *search})
	if err != nil {
		return presentable(err)
	}
	for _, acct := range list.Accounts {
		status := "active"
		if acct.Banned {
			status = "banned"
		}
		fmt.Printf("%s\t%s\t%s\n", acct.Name, acct.Email, status)
	}
	fmt.Printf("%d total\n", list.Pagination.Total)
	return nil
}

func (a *app) listAchievements(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("achievements", flag.ExitOnError)
	tier := fs.String("tier", "", "filter by tier")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := achievements.NewService(a.client).List(ctx, achievements.ListFilters{Tier: *tier})
	if err != nil {
		return presentable(err)
	}
	for _, ach := range list.Achievements {
		fmt.Printf("%s\t%s\t%d pts\n", ach.Title, ach.Tier, ach.Reward.Points)
	}
	fmt.Printf("%d total\n", list.Pagination.Total)
	return nil
}

func (a *app) listStickers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stickers", flag.ExitOnError)
	rarity := fs.String("rarity", "", "filter by rarity")
	number := fs.Int("number", 0, "look up a single sticker by album number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := stickers.NewService(a.client)

	if *number > 0 {
		sticker, err := svc.GetByNumber(ctx, *number)
		if err != nil {
			return presentable(err)
		}
		fmt.Printf("#%d\t%s\t%s\n", sticker.Number, sticker.Name, sticker.Rarity)
		return nil
	}

	list, err := svc.List(ctx, stickers.ListFilters{Rarity: *rarity})
	if err != nil {
		return presentable(err)
	}
	for _, s := range list.Stickers {
		fmt.Printf("#%d\t%s\t%s\n", s.Number, s.Name, s.Rarity)
	}
	fmt.Printf("%d total\n", list.Pagination.Total)
	return nil
}

func (a *app) points(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("points", flag.ExitOnError)
	simulate := fs.String("simulate", "", "simulate an action against the active ruleset")
	quantity := fs.Int("quantity", 1, "how many times the simulated action runs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := pointsconfig.NewService(a.client)

	if *simulate != "" {
		sim, err := svc.Simulate(ctx, *simulate, *quantity)
		if err != nil {
			return presentable(err)
		}
		fmt.Printf("%s x%d -> %d points (effective %d)\n",
			sim.Action, sim.Quantity, sim.TotalPoints, sim.EffectiveQuantity)
		if sim.LimitReached {
			fmt.Println("daily limit reached")
		}
		return nil
	}

	config, err := svc.Get(ctx)
	if err != nil {
		return presentable(err)
	}
	fmt.Printf("ruleset v%d\n", config.Version)
	fmt.Printf("checkin: %d pts (daily limit %d)\n",
		config.Actions.CheckIn.Points, config.Actions.CheckIn.DailyLimit)
	fmt.Printf("review: %d pts\tshare: %d pts\tfirst visit: %d pts\n",
		config.Actions.Review.Points, config.Actions.Share.Points, config.Actions.FirstVisit.Points)
	return nil
}

func (a *app) sync(ctx context.Context) error {
	svc := syncsvc.NewService(
		coupons.NewService(a.client),
		missions.NewService(a.client),
		places.NewService(a.client),
		20,
	)
	snap, err := svc.FetchAll(ctx)
	if err != nil {
		return presentable(err)
	}
	fmt.Printf("synced %d coupons, %d missions, %d places\n",
		len(snap.Coupons), len(snap.Missions), len(snap.Places))
	return nil
}

// ping waits for the API to become reachable, with exponential backoff.
func (a *app) ping(ctx context.Context) error {
	err := retry.Do(
		func() error {
			return a.client.Get(ctx, "/health", nil)
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(api.IsNetwork),
	)
	if err != nil {
		return presentable(err)
	}
	fmt.Println("api reachable:", a.client.BaseURL())
	return nil
}

func parseCoords(s string) (float64, float64, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected lat,lng, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad latitude %q", parts[0])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad longitude %q", parts[1])
	}
	return lat, lng, nil
}

// presentable unwraps a classified error to its user-facing message.
func presentable(err error) error {
	apiErr := api.Classify(err)
	if api.IsAuth(err) {
		return fmt.Errorf("%s (run: cityhop login)", apiErr.Message)
	}
	return fmt.Errorf("%s", apiErr.Message)
}
