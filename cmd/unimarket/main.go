package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/yusufnuru/unimarket-client/internal/domain/entity"
	"github.com/yusufnuru/unimarket-client/internal/infrastructure/httpclient"
	"github.com/yusufnuru/unimarket-client/internal/infrastructure/socket"
	"github.com/yusufnuru/unimarket-client/internal/schema"
	"github.com/yusufnuru/unimarket-client/internal/usecase"
	"github.com/yusufnuru/unimarket-client/pkg/config"
	"github.com/yusufnuru/unimarket-client/pkg/logger"
)

const usageText = `Usage: unimarket <command> [options]

Commands:
  login        -email -password
  register     -email -password -confirm -phone -role -first -last
  logout
  me
  products     [-search -category -min -max -sort -page]
  product      <id>
  categories
  store        show | create | update | delete | requests | request | warnings | products
  wishlist     list | add <productId> | remove <productId>
  reports
  requests     [-status -page]   (admin approval queue)
  chat         interactive chat session
`

// app bundles the wired usecases for the command handlers.
type app struct {
	cfg      *config.Config
	client   *httpclient.Client
	session  *usecase.Session
	auth     *usecase.AuthUseCase
	chat     *usecase.ChatUseCase
	seller   *usecase.SellerUseCase
	buyer    *usecase.BuyerUseCase
	admin    *usecase.AdminUseCase
	category *usecase.CategoryUseCase
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	client, err := httpclient.New(cfg.APIBaseURL, cfg.RequestTimeout)
	if err != nil {
		log.Fatalf("Failed to create API client: %v", err)
	}

	session := usecase.NewSession()
	authUseCase := usecase.NewAuthUseCase(client, session)
	client.SetRefreshFunc(authUseCase.Refresh)

	dialer := func(ctx context.Context, hs socket.Handshake) (usecase.SocketConn, error) {
		return socket.Dial(ctx, cfg.SocketURL, client.Jar(), hs)
	}
	chatUseCase := usecase.NewChatUseCase(client, session, authUseCase, dialer, cfg.ChatTimeout)
	authUseCase.AttachChat(chatUseCase)

	client.SetSessionExpiredHook(func(ctx context.Context) {
		logger.Warn("Session expired, logging out")
		authUseCase.Logout(ctx)
	})

	sellerUseCase := usecase.NewSellerUseCase(client, session)
	buyerUseCase := usecase.NewBuyerUseCase(client, session)
	adminUseCase := usecase.NewAdminUseCase(client, session)
	categoryUseCase := usecase.NewCategoryUseCase(client)

	authUseCase.RegisterResetter(sellerUseCase)
	authUseCase.RegisterResetter(buyerUseCase)
	authUseCase.RegisterResetter(adminUseCase)
	authUseCase.RegisterResetter(categoryUseCase)

	a := &app{
		cfg:      cfg,
		client:   client,
		session:  session,
		auth:     authUseCase,
		chat:     chatUseCase,
		seller:   sellerUseCase,
		buyer:    buyerUseCase,
		admin:    adminUseCase,
		category: categoryUseCase,
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if err := a.run(ctx, command, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		return a.auth.Logout(ctx)
	case "me":
		return a.cmdMe(ctx, args)
	case "products":
		return a.cmdProducts(ctx, args)
	case "product":
		return a.cmdProduct(ctx, args)
	case "categories":
		return a.cmdCategories(ctx)
	case "store":
		return a.cmdStore(ctx, args)
	case "wishlist":
		return a.cmdWishlist(ctx, args)
	case "reports":
		return a.cmdReports(ctx)
	case "requests":
		return a.cmdStoreRequests(ctx, args)
	case "chat":
		return a.cmdChat(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usageText)
		return nil
	default:
		fmt.Fprint(os.Stderr, usageText)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	out, err := a.auth.Login(ctx, schema.LoginInput{Email: *email, Password: *password})
	if err != nil {
		return err
	}

	user := a.session.Snapshot()
	fmt.Printf("%s\nLogged in as %s (%s)\n", out.Message, user.Email, user.Role)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	confirm := fs.String("confirm", "", "password confirmation")
	phone := fs.String("phone", "", "phone number")
	role := fs.String("role", "buyer", "buyer or seller")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	fs.Parse(args)

	out, err := a.auth.Register(ctx, schema.RegisterInput{
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
		PhoneNumber:     *phone,
		Role:            *role,
		FirstName:       *first,
		LastName:        *last,
	})
	if err != nil {
		return err
	}

	fmt.Println(out.Message)
	return nil
}

func (a *app) cmdMe(ctx context.Context, args []string) error {
	if err := a.auth.FetchUserInfo(ctx); err != nil {
		return err
	}
	user := a.session.Snapshot()
	fmt.Printf("ID:        %s\nEmail:     %s\nRole:      %s\nProfile:   %s\n", user.ID, user.Email, user.Role, user.ProfileID)
	return nil
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	search := fs.String("search", "", "search term")
	category := fs.String("category", "", "category id filter")
	minPrice := fs.String("min", "", "minimum price")
	maxPrice := fs.String("max", "", "maximum price")
	sortBy := fs.String("sort", "latest", "latest|oldest|price-low|price-high|name-asc|name-desc")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	listing := usecase.NewProductListing(ctx, a.client, "/public-product", a.cfg.PageLimit, a.cfg.DebounceDelay)

	query := listing.Query()
	query.Search = *search
	query.CategoryID = *category
	if *minPrice != "" {
		value, err := strconv.ParseFloat(*minPrice, 64)
		if err != nil {
			return fmt.Errorf("invalid -min value %q", *minPrice)
		}
		query.MinPrice = &value
	}
	if *maxPrice != "" {
		value, err := strconv.ParseFloat(*maxPrice, 64)
		if err != nil {
			return fmt.Errorf("invalid -max value %q", *maxPrice)
		}
		query.MaxPrice = &value
	}

	if by, order, ok := usecase.SortParams(usecase.SortOption(*sortBy)); ok {
		query.SortBy = by
		query.SortOrder = order
	}

	if err := listing.ApplyQuery(query); err != nil {
		return err
	}
	if *page > 1 {
		if err := listing.GoToPage(*page); err != nil {
			return err
		}
	}

	renderProducts(os.Stdout, listing.Items())
	fmt.Printf("Page %d of %d (%d products)  %s\n",
		listing.CurrentPage(), listing.TotalPages(), listing.TotalItems(),
		strings.Join(listing.PageNumbers(), " "))
	return nil
}

func (a *app) cmdProduct(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: unimarket product <id>")
	}

	product, err := usecase.GetProduct(ctx, a.client, fmt.Sprintf("/public-product/%s", args[0]))
	if err != nil {
		return err
	}

	fmt.Printf("Name:      %s\nCategory:  %s\nPrice:     %.2f\nQuantity:  %d\n", product.ProductName, product.Category.Name, product.Price, product.Quantity)
	if product.Description != "" {
		fmt.Printf("About:     %s\n", product.Description)
	}
	for _, image := range product.Images {
		fmt.Printf("Image:     %s\n", image.ImageURL)
	}
	return nil
}

func (a *app) cmdCategories(ctx context.Context) error {
	categories, err := a.category.FetchCategories(ctx)
	if err != nil {
		return err
	}
	renderCategories(os.Stdout, categories)
	return nil
}

func (a *app) cmdStore(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: unimarket store <show|create|update|delete|requests|request|warnings|products>")
	}
	sub := args[0]
	args = args[1:]

	if err := a.auth.FetchUserInfo(ctx); err != nil {
		return err
	}
	if err := a.seller.FetchStore(ctx); err != nil {
		return err
	}

	switch sub {
	case "show":
		store := a.seller.Store()
		if store == nil {
			fmt.Println("No store yet. Create one with: unimarket store create")
			return nil
		}
		fmt.Printf("Name:     %s\nStatus:   %s\nAddress:  %s\nAbout:    %s\n", store.StoreName, store.StoreStatus, store.StoreAddress, store.Description)
		return nil

	case "create":
		fs := flag.NewFlagSet("store create", flag.ExitOnError)
		name := fs.String("name", "", "store name")
		description := fs.String("description", "", "store description")
		address := fs.String("address", "", "store address")
		message := fs.String("message", "", "approval request message")
		fs.Parse(args)

		store, err := a.seller.CreateStore(ctx, schema.CreateStoreInput{
			Name:           *name,
			Description:    *description,
			Address:        *address,
			RequestMessage: *message,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Store %q created, approval pending\n", store.StoreName)
		return nil

	case "update":
		fs := flag.NewFlagSet("store update", flag.ExitOnError)
		name := fs.String("name", "", "store name")
		description := fs.String("description", "", "store description")
		address := fs.String("address", "", "store address")
		fs.Parse(args)

		store, err := a.seller.UpdateStore(ctx, schema.UpdateStoreInput{
			Name:        *name,
			Description: *description,
			Address:     *address,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Store %q updated\n", store.StoreName)
		return nil

	case "delete":
		if err := a.seller.DeleteStore(ctx); err != nil {
			return err
		}
		fmt.Println("Store deleted")
		return nil

	case "requests":
		requests, err := a.seller.FetchStoreRequests(ctx)
		if err != nil {
			return err
		}
		renderSellerRequests(os.Stdout, requests)
		return nil

	case "request":
		fs := flag.NewFlagSet("store request", flag.ExitOnError)
		message := fs.String("message", "", "approval request message")
		fs.Parse(args)

		if err := a.seller.CreateStoreRequest(ctx, schema.CreateStoreRequestInput{RequestMessage: *message}); err != nil {
			return err
		}
		fmt.Println("Approval request submitted")
		return nil

	case "warnings":
		warnings, err := a.seller.FetchStoreWarnings(ctx)
		if err != nil {
			return err
		}
		renderWarnings(os.Stdout, warnings)
		return nil

	case "products":
		path, err := a.seller.StoreProductsPath()
		if err != nil {
			return err
		}
		listing := usecase.NewProductListing(ctx, a.client, path, a.cfg.PageLimit, a.cfg.DebounceDelay)
		if err := listing.Refetch(); err != nil {
			return err
		}
		renderProducts(os.Stdout, listing.Items())
		fmt.Printf("Page %d of %d (%d products)\n", listing.CurrentPage(), listing.TotalPages(), listing.TotalItems())
		return nil

	default:
		return fmt.Errorf("unknown store subcommand %q", sub)
	}
}

func (a *app) cmdWishlist(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: unimarket wishlist <list|add|remove> [productId]")
	}
	if err := a.auth.FetchUserInfo(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		wishlists, err := a.buyer.FetchWishlists(ctx)
		if err != nil {
			return err
		}
		renderWishlists(os.Stdout, wishlists)
		return nil

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: unimarket wishlist add <productId>")
		}
		if _, err := a.buyer.AddToWishlist(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Added to wishlist")
		return nil

	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("usage: unimarket wishlist remove <productId>")
		}
		if err := a.buyer.RemoveWishlistItem(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Removed from wishlist")
		return nil

	default:
		return fmt.Errorf("unknown wishlist subcommand %q", args[0])
	}
}

func (a *app) cmdReports(ctx context.Context) error {
	if err := a.auth.FetchUserInfo(ctx); err != nil {
		return err
	}
	reports, err := a.buyer.FetchReports(ctx)
	if err != nil {
		return err
	}
	renderReports(os.Stdout, reports)
	return nil
}

func (a *app) cmdStoreRequests(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("requests", flag.ExitOnError)
	status := fs.String("status", "", "pending|approved|rejected")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	if err := a.auth.FetchUserInfo(ctx); err != nil {
		return err
	}
	if _, err := a.admin.AdminID(); err != nil {
		return err
	}

	listing := usecase.NewStoreRequestListing(ctx, a.client, "/admin/store-requests", a.cfg.PageLimit, a.cfg.DebounceDelay)

	query := listing.Query()
	query.Status = entity.RequestStatus(*status)
	if err := listing.ApplyQuery(query); err != nil {
		return err
	}
	if *page > 1 {
		if err := listing.GoToPage(*page); err != nil {
			return err
		}
	}

	renderStoreRequests(os.Stdout, listing.Items())
	fmt.Printf("Page %d of %d (%d requests)  %s\n",
		listing.CurrentPage(), listing.TotalPages(), listing.TotalItems(),
		strings.Join(listing.PageNumbers(), " "))
	return nil
}

const chatHelp = `Chat commands:
  /chats              list conversations
  /open <storeId>     open (or start) the conversation with a store
  /select <roomId>    switch to an existing conversation
  /more               load older messages
  /read               mark the open conversation as read
  /quit               leave chat
Anything else is sent as a message to the open conversation.
`

// cmdChat runs the interactive chat loop on top of the socket session.
func (a *app) cmdChat(ctx context.Context, args []string) error {
	if err := a.auth.FetchUserInfo(ctx); err != nil {
		return err
	}
	if err := a.chat.InitializeSocket(ctx); err != nil {
		return err
	}
	defer a.chat.CleanUp()

	if err := a.chat.FetchUserChats(ctx); err != nil {
		return err
	}

	fmt.Print(chatHelp)
	printPreviews(a.chat.SortedChatPreviews())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return nil

		case line == "/chats":
			if err := a.chat.FetchUserChats(ctx); err != nil {
				fmt.Printf("! %v\n", err)
				continue
			}
			printPreviews(a.chat.SortedChatPreviews())

		case strings.HasPrefix(line, "/open "):
			storeID := strings.TrimSpace(strings.TrimPrefix(line, "/open "))
			room, err := a.chat.InitializeChat(ctx, storeID)
			if err != nil {
				fmt.Printf("! %v\n", err)
				continue
			}
			fmt.Printf("Opened conversation %s\n", room.ChatRoomID)
			printMessages(a.chat.Messages(), a.session.UserID())

		case strings.HasPrefix(line, "/select "):
			roomID := strings.TrimSpace(strings.TrimPrefix(line, "/select "))
			preview := findPreview(a.chat.Previews(), roomID)
			if preview == nil {
				fmt.Println("! no such conversation, run /chats first")
				continue
			}
			if err := a.chat.SelectChat(ctx, preview.ChatRoomID, preview.StoreID, preview.BuyerID); err != nil {
				fmt.Printf("! %v\n", err)
				continue
			}
			printMessages(a.chat.Messages(), a.session.UserID())

		case line == "/more":
			if err := a.chat.LoadMoreMessages(ctx); err != nil {
				fmt.Printf("! %v\n", err)
				continue
			}
			printMessages(a.chat.Messages(), a.session.UserID())

		case line == "/read":
			a.chat.MarkChatAsRead(a.chat.CurrentRoomID())

		default:
			if a.chat.CurrentRoomID() == "" {
				fmt.Println("! open a conversation first (/open <storeId>)")
				continue
			}
			a.chat.SendMessage(line, "")
		}
	}
}

func findPreview(previews []entity.ChatPreview, roomID string) *entity.ChatPreview {
	for i := range previews {
		if previews[i].ChatRoomID == roomID {
			return &previews[i]
		}
	}
	return nil
}

func printPreviews(previews []entity.ChatPreview) {
	if len(previews) == 0 {
		fmt.Println("No conversations yet")
		return
	}
	for _, p := range previews {
		unread := ""
		if p.UnreadCount > 0 {
			unread = fmt.Sprintf(" (%d unread)", p.UnreadCount)
		}
		fmt.Printf("%s  %s / %s%s: %s\n", p.ChatRoomID, p.StoreName, p.BuyerName, unread, p.LastMessage)
	}
}

func printMessages(messages []entity.ChatMessage, selfID string) {
	for _, m := range messages {
		who := "them"
		if m.SenderID == selfID {
			who = "you"
		}
		fmt.Printf("[%s] %s: %s\n", m.CreatedAt.Format("15:04"), who, m.Message)
	}
}
