package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Query synced documents",
	Long:  `List, view and check access to documents in the documents table.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents modified since a time",
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentAccessCmd = &cobra.Command{
	Use:   "access [doc-id]",
	Short: "Decide whether a requester may see a document",
	Long: `Evaluates the access policy of the document's source for a requester
described by campus roles, year levels and the site admin flag.

Examples:
  sitesync document access 42 --roles "Senior School:Staff"
  sitesync document access 42 --years 7,8`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentAccess,
}

// Flags for the document commands.
var (
	documentSince       string
	documentLimit       int
	documentLastIndexed string
	accessRoles   string
	accessYears   string
	accessAdmin   bool
)

func init() {
	documentListCmd.Flags().StringVar(&documentSince, "since", "", "Unix seconds or RFC 3339 time (default: everything)")
	documentListCmd.Flags().IntVarP(&documentLimit, "limit", "n", 0, "Maximum number of documents to show (0 = all)")
	documentListCmd.Flags().StringVar(&documentLastIndexed, "last-indexed", "",
		"Mark documents created after this time (0 = never indexed) as new")

	documentAccessCmd.Flags().StringVar(&accessRoles, "roles", "", "Comma-separated campus roles")
	documentAccessCmd.Flags().StringVar(&accessYears, "years", "", "Comma-separated year levels")
	documentAccessCmd.Flags().BoolVar(&accessAdmin, "admin", false, "Requester is a site administrator")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentAccessCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	since, err := domain.ParseTimestamp(documentSince)
	if err != nil {
		return err
	}

	var lastIndexed time.Time
	markNew := documentLastIndexed != ""
	if markNew {
		if lastIndexed, err = domain.ParseTimestamp(documentLastIndexed); err != nil {
			return err
		}
	}

	docs, err := documentService.ListModifiedSince(cmd.Context(), since)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	total := len(docs)
	if documentLimit > 0 && total > documentLimit {
		docs = docs[:documentLimit]
	}

	for i := range docs {
		marker := ""
		if markNew && docs[i].IsNewSince(lastIndexed) {
			marker = "\t[new]"
		}
		cmd.Printf("  %d\t%s/%s\t%s%s\n", docs[i].ID, docs[i].Source, docs[i].ExternalID, docs[i].Title, marker)
	}

	cmd.Println()
	if len(docs) < total {
		cmd.Printf("Showing %d of %d documents\n", len(docs), total)
	} else {
		cmd.Printf("Total: %d documents\n", total)
	}
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	doc, err := documentService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %d\n\n", doc.ID)
	cmd.Printf("  Source:    %s\n", doc.Source)
	cmd.Printf("  Ext ID:    %s\n", doc.ExternalID)
	cmd.Printf("  Title:     %s\n", doc.Title)
	if doc.URL != "" {
		cmd.Printf("  URL:       %s\n", doc.URL)
	}
	cmd.Printf("  Audiences: %s\n", strings.Join(doc.Audiences, ", "))
	if doc.Keywords != "" {
		cmd.Printf("  Keywords:  %s\n", doc.Keywords)
	}
	cmd.Printf("  Created:   %s\n", formatTime(doc.CreatedAt))
	cmd.Printf("  Modified:  %s\n", formatTime(doc.ModifiedAt))
	if doc.Excerpt != "" {
		cmd.Println()
		cmd.Printf("  %s\n", doc.Excerpt)
	}
	return nil
}

func runDocumentAccess(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}

	requester := domain.Requester{
		Roles:     domain.ParseList(accessRoles),
		Years:     domain.ParseList(accessYears),
		SiteAdmin: accessAdmin,
	}

	access := documentService.CheckAccess(cmd.Context(), id, requester)
	cmd.Printf("Document %d: %s\n", id, access)
	return nil
}

func parseDocumentID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid document id %q: %w", s, domain.ErrInvalidInput)
	}
	return id, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
