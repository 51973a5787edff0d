package cmd

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"taggen/internal/models"
)

var tagKeywords []string // Seed keywords passed to the model

// tagCmd represents the tag command
var tagCmd = &cobra.Command{
	Use:   "tag [file]",
	Short: "Tag a local image file with the vision model",
	Long: `Builds a media description from a local image file (base64 preview,
size, MIME type) and sends it through the same tagging flow as the HTTP API,
printing the normalized result.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		desc, err := describeLocalFile(args[0], tagKeywords)
		if err != nil {
			return err
		}

		result, err := appInstance.TagService.Tag(cmd.Context(), desc)
		if err != nil {
			return fmt.Errorf("tagging %s failed: %w", desc.Name, err)
		}

		renderTagResult(desc.Name, result)
		return nil
	},
}

// describeLocalFile builds a MediaDescription for a local image file. Only
// the facts derivable from the filesystem are filled in; everything else is
// left to the model.
func describeLocalFile(path string, keywords []string) (*models.MediaDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return &models.MediaDescription{
		Name:        filepath.Base(path),
		FileType:    "image",
		Mime:        mime.TypeByExtension(filepath.Ext(path)),
		SizeBytes:   info.Size(),
		ModifiedAt:  info.ModTime().UTC().Format(time.RFC3339),
		ImageB64:    base64.StdEncoding.EncodeToString(data),
		RawKeywords: keywords,
	}, nil
}

// renderTagResult prints the normalized result as a table, with the rename
// suggestion below it.
func renderTagResult(name string, result *models.TagResult) {
	fmt.Println(color.GreenString("Tagged %s", name))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Values"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.Append([]string{"tags", strings.Join(result.Tags, ", ")})
	table.Append([]string{"topics", strings.Join(result.Topics, ", ")})
	table.Append([]string{"raw_keywords", strings.Join(result.RawKeywords, ", ")})
	table.Render()

	if result.Suggested != nil && result.Suggested.Rename != "" {
		fmt.Printf("Suggested rename: %s (%.0f%% confidence)\n",
			color.CyanString(result.Suggested.Rename), result.Suggested.Confidence*100)
		if result.Suggested.Reason != "" {
			fmt.Printf("Reason: %s\n", result.Suggested.Reason)
		}
	}
}

func init() {
	rootCmd.AddCommand(tagCmd)

	tagCmd.Flags().StringSliceVarP(&tagKeywords, "keyword", "k", nil, "Seed keyword hint passed to the model (repeatable)")
}
