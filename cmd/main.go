package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"readaloud/internal/cli/scheme/colours"
	"readaloud/internal/config"
	"readaloud/internal/reader/session"
)

func main() {

	config.SetDefaults()

	app := session.NewApp()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		app.Session.Cancel()
		app.Session.Player().Stop()
		fmt.Println("\n" + colours.Warning.Sprint("👋 Goodbye! Keep learning! 📚"))
		os.Exit(0)
	}()

	rootCmd := &cobra.Command{
		Use:   "readaloud",
		Short: "🎧 Read learning resources aloud",
		Long: `
┌─────────────────────────────────────┐
│  🎧 Welcome to ReadAloud! 📚        │
│  Continuous text-to-speech for      │
│  your learning resources ✨         │
└─────────────────────────────────────┘

ReadAloud fetches resources from your learning platform and reads them
aloud segment by segment, with pause, seek, and speed controls.
		`,
		Run: func(cmd *cobra.Command, args []string) {
			app.ShowWelcome()
		},
	}

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "📋 List available resources",
		Long:  "Display all resources from the learning platform and built-in samples",
		Run:   app.ListResources,
	}

	// Read command
	readCmd := &cobra.Command{
		Use:   "read [resource-id]",
		Short: "📖 Read a resource aloud",
		Long:  "Read a learning resource by its ID or select from a list",
		Run:   app.ReadResource,
	}

	// Voices command
	voicesCmd := &cobra.Command{
		Use:   "voices",
		Short: "🎤 List available voices",
		Long:  "Display the voices the speech engine currently reports",
		Run:   app.ShowVoices,
	}

	// Settings command
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "⚙️ Show TTS settings",
		Long:  "Display the current voice, rate, pitch, and reader settings",
		Run:   app.ShowSettings,
	}

	// Cache commands
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "📦 Manage the resource cache",
		Long:  "Inspect or clear the local learning-resource cache",
	}
	cacheStatusCmd := &cobra.Command{
		Use:   "status",
		Short: "📊 Show cache status",
		Run:   app.ShowCacheStatus,
	}
	cacheClearCmd := &cobra.Command{
		Use:   "clear",
		Short: "🧹 Clear the cache",
		Run:   app.ClearCache,
	}
	cacheCmd.AddCommand(cacheStatusCmd, cacheClearCmd)

	// Add flags
	listCmd.Flags().StringP("subject", "s", "", "Filter by subject")
	listCmd.Flags().String("style", "", "Filter by learning style")
	readCmd.Flags().StringP("voice", "v", "", "Voice to use for reading. See the voices command for options")
	readCmd.Flags().Float64P("rate", "r", 0, "Speed multiplier (0.5-2.0)")
	readCmd.Flags().Float64P("pitch", "p", 0, "Pitch multiplier")
	readCmd.Flags().BoolP("interactive", "i", false, "Interactive resource selection")
	readCmd.Flags().StringP("learner", "l", "", "Read the current resource of this learner's path")

	rootCmd.AddCommand(listCmd, readCmd, voicesCmd, settingsCmd, cacheCmd)

	// Load the platform catalog next to the built-in samples
	app.LoadPlatformResources()

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
}

// Configuration management with Viper
func init() {
	viper.SetConfigName("readaloud")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.readaloud")
	viper.AddConfigPath(".")

	viper.ReadInConfig()
}
