package cli

import (
	"fmt"

	"github.com/kazu0914/limitless-todo-extractor/internal/api"
	"github.com/kazu0914/limitless-todo-extractor/internal/core"
	"github.com/kazu0914/limitless-todo-extractor/internal/output"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chatsCmd)
	chatsCmd.AddCommand(chatsListCmd)
	chatsCmd.AddCommand(chatsGetCmd)
	chatsCmd.AddCommand(chatsDeleteCmd)

	// Chat list flags
	chatsListCmd.Flags().Int("limit", 0, "Maximum number of results (default 50, the API caps pages at 100)")
	chatsListCmd.Flags().String("direction", "", "Sort direction: asc or desc (default desc)")
	chatsListCmd.Flags().Bool("all", false, "Fetch every chat, following pagination")
	chatsListCmd.Flags().Bool("raw", false, "Emit raw JSON instead of summaries")
}

// chatsCmd groups the chat subcommands
var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "Work with Limitless chats",
}

// chatsListCmd handles the chats list subcommand
var chatsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chats",
	RunE:  handleChatsList,
}

// chatsGetCmd handles fetching a single chat by ID
var chatsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Retrieve a chat by its ID",
	Args:  cobra.ExactArgs(1),
	RunE:  handleChatsGet,
}

// chatsDeleteCmd handles deleting a chat
var chatsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a chat by its ID",
	Args:  cobra.ExactArgs(1),
	RunE:  handleChatsDelete,
}

func handleChatsList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	direction, _ := cmd.Flags().GetString("direction")
	all, _ := cmd.Flags().GetBool("all")
	raw, _ := cmd.Flags().GetBool("raw")

	if direction != "" && direction != "asc" && direction != "desc" {
		return fmt.Errorf("--direction must be asc or desc")
	}

	limitlessAPI, err := newAPI()
	if err != nil {
		return err
	}

	var chats []api.Chat
	if all {
		core.ProgressPrint("Fetching all chats...", quiet)
		chats, err = limitlessAPI.GetAllChats(direction)
	} else {
		core.ProgressPrint("Fetching chats...", quiet)
		var page *api.ChatPage
		page, err = limitlessAPI.ListChats(api.ChatListOptions{
			Limit:     limit,
			Direction: direction,
		})
		if page != nil {
			chats = page.Chats
		}
	}
	if err != nil {
		return err
	}

	if raw {
		output.PrintJSON(chats)
		return nil
	}

	if len(chats) == 0 {
		fmt.Println("No chats found.")
		return nil
	}
	fmt.Printf("Fetched %d chats:\n\n", len(chats))
	for _, chat := range chats {
		output.PrintChatSummary(chat)
	}
	return nil
}

func handleChatsGet(cmd *cobra.Command, args []string) error {
	id := args[0]

	limitlessAPI, err := newAPI()
	if err != nil {
		return err
	}

	core.Eprint(fmt.Sprintf("Fetching chat ID '%s'...", id), verbose)

	chat, err := limitlessAPI.GetChat(id)
	if err != nil {
		return err
	}

	output.PrintJSON(chat)
	return nil
}

func handleChatsDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	limitlessAPI, err := newAPI()
	if err != nil {
		return err
	}

	core.Eprint(fmt.Sprintf("Deleting chat '%s'...", id), verbose)

	ok, err := limitlessAPI.DeleteChat(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("server did not confirm deletion of chat '%s'", id)
	}
	fmt.Printf("Deleted chat %s\n", id)
	return nil
}
