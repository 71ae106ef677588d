package auction_api_client

// API endpoint paths, relative to the gate's base URL.
const (
	LoginEndpoint     = "/auth/login"
	TeamLoginEndpoint = "/auth/team/login"
	LogoutEndpoint    = "/auth/logout"
	MeEndpoint        = "/auth/me"

	PlayersEndpoint = "/players/"
	TeamsEndpoint   = "/teams/"

	AuctionStatusEndpoint  = "/auction/status"
	CurrentPlayerEndpoint  = "/auction/current_player"
	PlaceBidEndpoint       = "/auction/bid"
	BidHistoryEndpoint     = "/auction/bid_history"
	MarkSoldEndpoint       = "/auction/sold/"
	MarkUnsoldEndpoint     = "/auction/unsold/"
	SetLivePlayerEndpoint  = "/auction/set_current_player/"
	NextPlayerEndpoint     = "/auction/next_player"
	StartAuctionEndpoint   = "/auction/start"
	StopAuctionEndpoint    = "/auction/stop"
	StartReauctionEndpoint = "/auction/start-reauction"
	UnsoldPlayersEndpoint  = "/auction/unsold-players"
	AuctionRoundsEndpoint  = "/auction/auction-rounds"
	UndoSaleEndpoint       = "/auction/undo/"
	AuctionSocketEndpoint  = "/auction/ws"

	DashboardStatsEndpoint  = "/admin/dashboard/stats"
	TeamSpendingEndpoint    = "/admin/dashboard/team_spending"
	ActivityLogsEndpoint    = "/admin/activity-logs"
	EligiblePlayersEndpoint = "/admin/auction/eligible-players"
	ViewerAnalyticsEndpoint = "/viewer/analytics"

	ChatSendEndpoint     = "/chat/send"
	ChatMessagesEndpoint = "/chat/messages"

	WishlistAddEndpoint    = "/wishlist/add/"
	WishlistRemoveEndpoint = "/wishlist/remove/"
	WishlistUpdateEndpoint = "/wishlist/update/"
	MyWishlistEndpoint     = "/wishlist/my-wishlist"
)
