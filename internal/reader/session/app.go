package session

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"readaloud/internal/cli/scheme/colours"
	"readaloud/internal/domain/catalog"
	"readaloud/internal/domain/resource"
	"readaloud/internal/reader/speech"
)

// App is the top level application structure wiring the resource catalog to
// the read-aloud session.
type App struct {
	client      *catalog.Client
	cache       *catalog.Cache
	collections []resource.Collection
	Session     *Session
}

func NewApp() *App {
	engine, err := speech.New(speech.Config{
		Type: viper.GetString("tts.engine"),
	})
	if err != nil {
		// Terminal condition: keep the app usable for browsing, disable
		// playback.
		logrus.WithError(err).Warn("no usable speech engine, playback disabled")
		engine = nil
	}

	client := catalog.NewClient(viper.GetString("api.base_url"))
	maxAge := time.Duration(viper.GetInt("cache.max_age_hours")) * time.Hour

	return &App{
		client:      client,
		cache:       catalog.NewCache(client, cacheDirectory(), maxAge),
		collections: []resource.Collection{catalog.SampleCollection()},
		Session:     New(engine),
	}
}

// LoadPlatformResources pulls the remote catalog in next to the built-in
// samples. Failure is not fatal: the samples keep the reader usable.
func (a *App) LoadPlatformResources() {
	collection, err := a.cache.GetCollection()
	if err != nil {
		logrus.WithError(err).Warn("could not load platform resources")
		colours.Warning.Println("⚠️ Could not reach the learning platform, using built-in samples")
		return
	}

	a.collections = append(a.collections, *collection)
	colours.Success.Printf("✨ Loaded %d resources from the learning platform\n", len(collection.Resources))
}

func (a *App) ShowWelcome() {
	fmt.Println()
	colours.Title.Println("🌟 Welcome to ReadAloud! 🌟")
	fmt.Println()
	colours.Info.Println("📚 Available commands:")
	fmt.Println("  • readaloud list      - Browse available resources")
	fmt.Println("  • readaloud read      - Read a resource aloud")
	fmt.Println("  • readaloud voices    - List available voices")
	fmt.Println("  • readaloud settings  - Show voice settings")
	fmt.Println("  • readaloud cache     - Manage the resource cache")
	fmt.Println()
	colours.Prompt.Println("✨ Ready to listen and learn? ✨")
}

func (a *App) ListResources(cmd *cobra.Command, args []string) {
	subject, _ := cmd.Flags().GetString("subject")
	style, _ := cmd.Flags().GetString("style")

	fmt.Println()
	colours.Title.Println("📚 Available Resources 📚")
	fmt.Println()

	count := 0
	for _, collection := range a.collections {
		colours.Info.Printf("📖 From %s:\n", collection.Name)

		for _, item := range collection.Resources {
			if subject != "" && !strings.Contains(strings.ToLower(item.Subject), strings.ToLower(subject)) {
				continue
			}
			if style != "" && !strings.Contains(strings.ToLower(item.LearningStyle), strings.ToLower(style)) {
				continue
			}

			count++
			fmt.Printf("  %d. ", count)
			colours.Title.Printf("%s", item.Topic)
			fmt.Printf("\n     📚 Subject: %s | ⏱️ Duration: %s\n", item.Subject, item.Duration)
			if item.Description != "" {
				fmt.Printf("     💡 %s\n", item.Description)
			}
			colours.Info.Printf("     ID: %s\n", item.ID)
			fmt.Println()
		}
	}

	if count == 0 {
		colours.Warning.Println("🔍 No resources found matching your criteria.")
	} else {
		colours.Success.Printf("✨ Found %d resources! ✨\n", count)
	}
}

func (a *App) ReadResource(cmd *cobra.Command, args []string) {
	interactive, _ := cmd.Flags().GetBool("interactive")

	if voice, _ := cmd.Flags().GetString("voice"); voice != "" {
		a.Session.Player().SetVoice(voice)
	}
	if rate, _ := cmd.Flags().GetFloat64("rate"); rate > 0 {
		a.Session.Player().SetRate(rate)
	}
	if pitch, _ := cmd.Flags().GetFloat64("pitch"); pitch > 0 {
		a.Session.Player().SetPitch(pitch)
	}

	if learner, _ := cmd.Flags().GetString("learner"); learner != "" {
		a.readCurrentPathResource(learner)
		return
	}

	if len(args) == 0 || interactive {
		a.interactiveSelection()
		return
	}

	item := a.findResourceByID(args[0])
	if item == nil {
		colours.Error.Printf("❌ Resource with ID '%s' not found!\n", args[0])
		return
	}

	a.Session.Read(*item)
}

// readCurrentPathResource reads the resource a learner's path currently
// points at.
func (a *App) readCurrentPathResource(learnerID string) {
	path, err := a.client.GetPath(learnerID)
	if err != nil {
		colours.Error.Printf("❌ Failed to fetch learning path: %v\n", err)
		return
	}

	if path.Current == nil {
		colours.Success.Println("🎉 This learning path is complete!")
		return
	}

	colours.Info.Printf("🧭 Path progress: %d/%d\n", path.Position+1, path.TotalResources)
	a.Session.Read(*path.Current)
}

func (a *App) interactiveSelection() {
	items := a.allResources()
	if len(items) == 0 {
		colours.Error.Println("❌ No resources available!")
		return
	}

	fmt.Println()
	colours.Title.Println("📚 Choose a Resource 📚")
	fmt.Println()

	for i, item := range items {
		fmt.Printf("%d. ", i+1)
		colours.Title.Printf("%s", item.Topic)
		fmt.Printf(" — ")
		colours.Subject.Printf("%s", item.Subject)
		fmt.Printf(" (%s)\n", item.Duration)
	}

	fmt.Println()
	colours.Prompt.Print("🌟 Enter the number of a resource (or 'q' to quit): ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "q" || input == "quit" {
		colours.Warning.Println("👋 Maybe next time!")
		return
	}

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(items) {
		colours.Error.Println("❌ Invalid selection! Please try again.")
		return
	}

	a.Session.Read(items[choice-1])
}

func (a *App) ShowVoices(cmd *cobra.Command, args []string) {
	a.Session.ShowVoices()
}

func (a *App) ShowSettings(cmd *cobra.Command, args []string) {
	fmt.Println()
	colours.Title.Println("⚙️ TTS Settings ⚙️")
	fmt.Println()

	colours.Prompt.Println("🎤 Voice Settings:")
	fmt.Printf("  • Engine: %s\n", viper.GetString("tts.engine"))
	fmt.Printf("  • Voice: %s\n", viper.GetString("tts.voice"))
	fmt.Printf("  • Rate: %.2fx\n", viper.GetFloat64("tts.rate"))
	fmt.Printf("  • Pitch: %.2fx\n", viper.GetFloat64("tts.pitch"))
	fmt.Printf("  • Volume: %.0f%%\n", viper.GetFloat64("tts.volume")*100)
	fmt.Println()
	colours.Prompt.Println("📖 Reader Settings:")
	fmt.Printf("  • Chunk length: %d characters\n", viper.GetInt("reader.chunk_max"))
	fmt.Printf("  • Segment gap: %dms\n", viper.GetInt("reader.gap_ms"))
	fmt.Println()
	colours.Info.Printf("💡 Engines on this system: %v\n", speech.AvailableEngines())
}

func (a *App) ShowCacheStatus(cmd *cobra.Command, args []string) {
	colours.Title.Println("📊 Resource Cache Status")

	info := a.cache.CacheInfo()
	if !info["exists"].(bool) {
		colours.Warning.Println("❌ Cache does not exist")
		colours.Info.Println("💡 Run 'readaloud list' to populate it")
		return
	}

	colours.Success.Println("✅ Cache exists")
	colours.Info.Printf("📁 Location: %s\n", info["file"].(string))
	colours.Info.Printf("📏 Size: %d bytes\n", info["size"].(int64))
	colours.Info.Printf("🕐 Last modified: %s\n", info["last_modified"].(time.Time).Format("2006-01-02 15:04:05"))

	if info["is_fresh"].(bool) {
		colours.Success.Println("🔄 Cache is fresh")
	} else {
		colours.Warning.Println("⏰ Cache is stale")
	}
	colours.Info.Printf("⏳ Max age: %.1f hours\n", info["max_age_hours"].(float64))
}

func (a *App) ClearCache(cmd *cobra.Command, args []string) {
	if err := a.cache.ClearCache(); err != nil {
		colours.Error.Printf("❌ Failed to clear cache: %v\n", err)
		return
	}
	colours.Success.Println("✅ Cache cleared")
}

func (a *App) allResources() []resource.Item {
	var all []resource.Item
	for _, collection := range a.collections {
		all = append(all, collection.Resources...)
	}
	return all
}

func (a *App) findResourceByID(id string) *resource.Item {
	for _, collection := range a.collections {
		for _, item := range collection.Resources {
			if item.ID == id {
				return &item
			}
		}
	}
	return nil
}

// cacheDirectory returns the appropriate cache directory.
func cacheDirectory() string {
	if cacheDir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cacheDir, "readaloud")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".readaloud", "cache")
	}

	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, "cache")
	}

	return "cache"
}
