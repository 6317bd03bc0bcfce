package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"nearby-places/internal/config"
	"nearby-places/pkg/logger"
	"nearby-places/pkg/mapview"
	"nearby-places/pkg/places"
	"nearby-places/pkg/search"
)

// Exit codes.
const (
	exitRendered = 0
	exitFailed   = 1
	exitDenied   = 2
	exitUsage    = 64
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "CRITICAL ERROR: application panic recovered: %v\n", r)
			os.Exit(exitFailed)
		}
	}()

	var (
		configPath = flag.String("config", getEnvOrDefault("PLACESMAP_CONFIG", ""), "Optional YAML config file (env: PLACESMAP_CONFIG)")
		pngPath    = flag.String("png", "", "Also write the rendered map to this PNG file")
		debug      = flag.Bool("debug", getEnvBoolOrDefault("DEBUG", false), "Enable debug logging (env: DEBUG)")
		help       = flag.Bool("help", false, "Show help message")

		lat       = flag.Float64("lat", 0, "Search latitude (default 18.55)")
		lng       = flag.Float64("lng", 0, "Search longitude (default 73.94)")
		radius    = flag.Int("radius", 0, "Search radius in meters (default 10000)")
		placeType = flag.String("type", "", "Place type (default Hospitality)")
		language  = flag.String("language", "", "Result language, BCP 47")
		apiKey    = flag.String("key", "", "Places API key (env: GOOGLE_MAPS_API_KEY)")
		cameraLat = flag.Float64("camera-lat", 0, "Camera latitude after rendering (default 18.55)")
		cameraLng = flag.Float64("camera-lng", 0, "Camera longitude after rendering (default 73.94)")
		zoom      = flag.Float64("zoom", 0, "Camera zoom after rendering (default 15)")
		transport = flag.String("transport", "", "HTTP transport: net/http or fasthttp")
		timeout   = flag.Duration("timeout", 0, "Search timeout (default 30s)")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	manager := config.NewManager()
	cfg, err := manager.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(exitUsage)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			cfg.Search.Latitude = *lat
		case "lng":
			cfg.Search.Longitude = *lng
		case "radius":
			cfg.Search.RadiusMeters = *radius
		case "type":
			cfg.Search.PlaceType = *placeType
		case "language":
			cfg.Search.Language = *language
		case "key":
			cfg.Places.APIKey = *apiKey
		case "camera-lat":
			cfg.Camera.Latitude = *cameraLat
		case "camera-lng":
			cfg.Camera.Longitude = *cameraLng
		case "zoom":
			cfg.Camera.Zoom = *zoom
		case "transport":
			cfg.Places.Transport = *transport
		case "timeout":
			cfg.Search.Timeout = *timeout
		}
	})

	if *debug {
		cfg.Logger.Level = "debug"
	}
	logger.SetGlobalLogger(logger.New(cfg.Logger))

	os.Exit(run(context.Background(), cfg, *pngPath, os.Stdout))
}

// run performs the startup search and renders it to out.
func run(ctx context.Context, cfg *config.Config, pngPath string, out io.Writer) int {
	query := cfg.SearchQuery()
	if err := query.Validate(); err != nil {
		fmt.Fprintf(out, "ERROR: invalid search: %v\n", err)
		return exitUsage
	}
	camera := cfg.MapCamera()
	if err := camera.Center.Validate(); err != nil || camera.Zoom < mapview.MinZoom || camera.Zoom > mapview.MaxZoom {
		fmt.Fprintf(out, "ERROR: invalid camera %s z%g\n", camera.Center, camera.Zoom)
		return exitUsage
	}

	client, err := places.NewClient(cfg.ClientConfig())
	if err != nil {
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return exitUsage
	}
	defer client.Close()

	console := mapview.NewConsole(out).WithOrigin(query.Location())
	m := mapview.NewMap()
	handler := search.NewHandler(
		mapview.Multi{console, m},
		mapview.Notifiers{console, mapview.NewLogNotifier()},
		camera,
	)
	session := search.NewSession(client, handler)

	if cfg.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Search.Timeout)
		defer cancel()
	}

	outcome, _ := session.Run(ctx, query)

	if pngPath != "" && outcome.State == search.StateRendered {
		if err := writePNG(pngPath, cfg, m.Snapshot()); err != nil {
			fmt.Fprintf(out, "ERROR: %v\n", err)
			return exitFailed
		}
		fmt.Fprintf(out, "map written to %s\n", pngPath)
	}

	switch outcome.State {
	case search.StateRendered:
		return exitRendered
	case search.StateDenied:
		return exitDenied
	default:
		return exitFailed
	}
}

func writePNG(path string, cfg *config.Config, snap mapview.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := mapview.NewRaster(cfg.Render.Width, cfg.Render.Height).WritePNG(f, snap); err != nil {
		return err
	}
	return f.Close()
}

func printUsage() {
	fmt.Println("nearby-places: one Places nearby search rendered as map markers")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    ./nearby-places [OPTIONS]")
	fmt.Println("    ./nearby-places -config config/dev.yaml -png map.png")
	fmt.Println("")
	fmt.Println("SEARCH:")
	fmt.Println("    -lat float             Search latitude (default: 18.55)")
	fmt.Println("    -lng float             Search longitude (default: 73.94)")
	fmt.Println("    -radius int            Radius in meters (default: 10000)")
	fmt.Println("    -type string           Place type (default: Hospitality)")
	fmt.Println("    -language string       Result language, BCP 47 tag")
	fmt.Println("    -key string            API key (env: GOOGLE_MAPS_API_KEY, PLACESMAP_PLACES_API_KEY)")
	fmt.Println("")
	fmt.Println("RENDERING:")
	fmt.Println("    -camera-lat float      Camera latitude after rendering (default: 18.55)")
	fmt.Println("    -camera-lng float      Camera longitude after rendering (default: 73.94)")
	fmt.Println("    -zoom float            Camera zoom after rendering (default: 15)")
	fmt.Println("    -png string            Write the rendered map to a PNG file")
	fmt.Println("")
	fmt.Println("OTHER:")
	fmt.Println("    -config string         YAML config file (env: PLACESMAP_CONFIG)")
	fmt.Println("    -transport string      net/http (default) or fasthttp")
	fmt.Println("    -timeout duration      Search timeout (default: 30s)")
	fmt.Println("    -debug                 Enable debug logging (env: DEBUG)")
	fmt.Println("    -help                  Show this help message")
	fmt.Println("")
	fmt.Println("EXIT CODES:")
	fmt.Println("    0 rendered, 1 failed, 2 request denied, 64 bad usage")
}
