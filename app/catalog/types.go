package catalog

// Book categories. These are the assignable categories; the filter bar
// additionally exposes the pseudo-filters in ranker.go.
const (
	CategoryPsychology = "Psychology"
	CategoryPhilosophy = "Philosophy"
	CategoryFinance    = "Finance"
	CategorySelfGrowth = "Self-Growth"
	CategoryScience    = "Science"
	CategoryTechnology = "Technology"
	CategoryHistory    = "History"
	CategoryBusiness   = "Business"
	CategoryBiography  = "Biography"
)

// Categories lists all assignable book categories in filter bar order.
var Categories = []string{
	CategoryPhilosophy,
	CategoryPsychology,
	CategoryBusiness,
	CategorySelfGrowth,
	CategoryBiography,
	CategoryHistory,
	CategoryScience,
	CategoryTechnology,
	CategoryFinance,
}

// Book statuses.
const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
	StatusArchived  = "Archived"
)

// Reading modes recorded in history.
const (
	ModeRead  = "read"
	ModeAudio = "audio"
)

// Flags are the admin-assigned promotion flags on a book. Ranking precedence
// is defined by Score; FeaturedToday and FeaturedInCarousel do not affect the
// score (the featured book is pulled out of the grid entirely).
type Flags struct {
	PushedToTop        bool `json:"isPushedToTop" yaml:"pushed_to_top"`
	Trending           bool `json:"isTrending" yaml:"trending"`
	StaffPick          bool `json:"isStaffPick" yaml:"staff_pick"`
	Hot                bool `json:"isHot" yaml:"hot"`
	Recommended        bool `json:"isRecommended" yaml:"recommended"`
	Signature          bool `json:"isSignature" yaml:"signature"`
	FeaturedToday      bool `json:"isFeaturedToday" yaml:"featured_today"`
	FeaturedInCarousel bool `json:"isFeaturedInCarousel" yaml:"featured_in_carousel"`
}

// Book is a single catalog record with display metadata and promotion flags.
type Book struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Author          string   `json:"author" yaml:"author"`
	PublicationYear int      `json:"publicationYear,omitempty" yaml:"publication_year"`
	CoverImageURL   string   `json:"coverImageUrl,omitempty" yaml:"cover_image_url"`
	Caption         string   `json:"caption,omitempty" yaml:"caption"`
	Tags            []string `json:"tags" yaml:"tags"`
	Summary         string   `json:"summary,omitempty" yaml:"summary"`
	BrutalTruth     string   `json:"brutalTruth,omitempty" yaml:"brutal_truth"`
	CoreValue       string   `json:"coreValue,omitempty" yaml:"core_value"`
	OneLinerHook    string   `json:"oneLinerHook,omitempty" yaml:"one_liner_hook"`
	Category        string   `json:"category" yaml:"category"`
	Difficulty      string   `json:"difficultyLevel,omitempty" yaml:"difficulty"`

	PodcastURL      string `json:"podcastUrl,omitempty" yaml:"podcast_url"`
	PodcastTitle    string `json:"podcastTitle,omitempty" yaml:"podcast_title"`
	PodcastDuration string `json:"podcastDuration,omitempty" yaml:"podcast_duration"`
	TrailerURL      string `json:"trailerUrl,omitempty" yaml:"trailer_url"`
	ExternalLink    string `json:"externalLink,omitempty" yaml:"external_link"`

	Status             string `json:"status" yaml:"status"`
	ScheduledPublishAt int64  `json:"scheduledPublishAt,omitempty" yaml:"scheduled_publish_at"` // ms since epoch, 0 = none
	CreatedAt          int64  `json:"createdAt" yaml:"-"`                                       // ms since epoch

	Flags Flags `json:"flags" yaml:"flags"`
}

// ValidCategory reports whether category is one of the assignable categories.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
