package xweb

import "fmt"

// bearerToken is the static web-app bearer token sent on every API call.
// It is baked into the official web client and is stable across sessions.
const bearerToken = "AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA"

// Endpoint holds a GraphQL operation ID, its name, and the per-operation
// feature flags the server requires to accept the request.
type Endpoint struct {
	ID       string
	Name     string
	Features map[string]any
}

// URL returns the full wire path for this endpoint under the given API base.
func (e Endpoint) URL(base string) string {
	return fmt.Sprintf("%s/graphql/%s/%s", base, e.ID, e.Name)
}

// Endpoints maps logical operation names to their versioned wire paths.
// The IDs are opaque query hashes that rotate whenever the web app ships a
// new build; they are data, not code, and are never mutated at runtime.
var Endpoints = map[string]Endpoint{
	"UserByScreenName":         {ID: "Yka-W8dz7RaEuQNkroPkYw", Name: "UserByScreenName", Features: userFeatures},
	"UserByRestId":             {ID: "Qw77dDjp9xCpUY-AXwt-yQ", Name: "UserByRestId", Features: userFeatures},
	"UserTweets":               {ID: "E3opETHurmVJflFsUBVuUQ", Name: "UserTweets", Features: feedFeatures},
	"UserTweetsAndReplies":     {ID: "bt4TKuFz4T7Ckk-VvQVSow", Name: "UserTweetsAndReplies", Features: feedFeatures},
	"UserMedia":                {ID: "dexO_2tohK86JDudXXG3Yw", Name: "UserMedia", Features: feedFeatures},
	"Likes":                    {ID: "B8I_QCljDBVfin21TTWMqA", Name: "Likes", Features: feedFeatures},
	"TweetDetail":              {ID: "QuBlQ6SxNAQCt6-kBiCXCQ", Name: "TweetDetail", Features: detailFeatures},
	"SearchTimeline":           {ID: "UN1i3zUiCWa-6r-Uaho4fw", Name: "SearchTimeline", Features: feedFeatures},
	"ListLatestTweetsTimeline": {ID: "Pa45JvqZuKcW1plybfgBlQ", Name: "ListLatestTweetsTimeline", Features: feedFeatures},
	"HomeTimeline":             {ID: "HJFjzBgCs16TqxewQOeLNg", Name: "HomeTimeline", Features: feedFeatures},
	"HomeLatestTimeline":       {ID: "DiTkXJgLqBBxCs7zaYsbtA", Name: "HomeLatestTimeline", Features: detailFeatures},
}

// userFeatures is the flag set for profile lookups.
var userFeatures = map[string]any{
	"hidden_profile_subscriptions_enabled":                              true,
	"rweb_tipjar_consumption_enabled":                                   true,
	"responsive_web_graphql_exclude_directive_enabled":                  true,
	"verified_phone_label_enabled":                                      false,
	"subscriptions_verification_info_is_identity_verified_enabled":      true,
	"subscriptions_verification_info_verified_since_enabled":            true,
	"highlights_tweets_tab_ui_enabled":                                  true,
	"responsive_web_twitter_article_notes_tab_enabled":                  true,
	"subscriptions_feature_can_gift_premium":                            true,
	"creator_subscriptions_tweet_preview_api_enabled":                   true,
	"responsive_web_graphql_skip_user_profile_image_extensions_enabled": false,
	"responsive_web_graphql_timeline_navigation_enabled":                true,
}

// feedFeatures is the flag set for timeline and search operations.
var feedFeatures = map[string]any{
	"rweb_tipjar_consumption_enabled":                                         true,
	"responsive_web_graphql_exclude_directive_enabled":                        true,
	"verified_phone_label_enabled":                                            false,
	"creator_subscriptions_tweet_preview_api_enabled":                         true,
	"responsive_web_graphql_timeline_navigation_enabled":                      true,
	"responsive_web_graphql_skip_user_profile_image_extensions_enabled":       false,
	"communities_web_enable_tweet_community_results_fetch":                    true,
	"c9s_tweet_anatomy_moderator_badge_enabled":                               true,
	"articles_preview_enabled":                                                true,
	"responsive_web_edit_tweet_api_enabled":                                   true,
	"graphql_is_translatable_rweb_tweet_is_translatable_enabled":              true,
	"view_counts_everywhere_api_enabled":                                      true,
	"longform_notetweets_consumption_enabled":                                 true,
	"responsive_web_twitter_article_tweet_consumption_enabled":                true,
	"tweet_awards_web_tipping_enabled":                                        false,
	"creator_subscriptions_quote_tweet_preview_enabled":                       false,
	"freedom_of_speech_not_reach_fetch_enabled":                               true,
	"standardized_nudges_misinfo":                                             true,
	"tweet_with_visibility_results_prefer_gql_limited_actions_policy_enabled": true,
	"rweb_video_timestamps_enabled":                                           true,
	"longform_notetweets_rich_text_read_enabled":                              true,
	"longform_notetweets_inline_media_enabled":                                true,
	"responsive_web_enhance_cards_enabled":                                    false,
}

// detailFeatures is the flag set for conversation detail views. It currently
// matches feedFeatures field for field but has drifted independently before,
// so it stays a separate table.
var detailFeatures = map[string]any{
	"rweb_tipjar_consumption_enabled":                                         true,
	"responsive_web_graphql_exclude_directive_enabled":                        true,
	"verified_phone_label_enabled":                                            false,
	"creator_subscriptions_tweet_preview_api_enabled":                         true,
	"responsive_web_graphql_timeline_navigation_enabled":                      true,
	"responsive_web_graphql_skip_user_profile_image_extensions_enabled":       false,
	"communities_web_enable_tweet_community_results_fetch":                    true,
	"c9s_tweet_anatomy_moderator_badge_enabled":                               true,
	"articles_preview_enabled":                                                true,
	"responsive_web_edit_tweet_api_enabled":                                   true,
	"graphql_is_translatable_rweb_tweet_is_translatable_enabled":              true,
	"view_counts_everywhere_api_enabled":                                      true,
	"longform_notetweets_consumption_enabled":                                 true,
	"responsive_web_twitter_article_tweet_consumption_enabled":                true,
	"tweet_awards_web_tipping_enabled":                                        false,
	"creator_subscriptions_quote_tweet_preview_enabled":                       false,
	"freedom_of_speech_not_reach_fetch_enabled":                               true,
	"standardized_nudges_misinfo":                                             true,
	"tweet_with_visibility_results_prefer_gql_limited_actions_policy_enabled": true,
	"rweb_video_timestamps_enabled":                                           true,
	"longform_notetweets_rich_text_read_enabled":                              true,
	"longform_notetweets_inline_media_enabled":                                true,
	"responsive_web_enhance_cards_enabled":                                    false,
}
