package messages

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// Kind identifies a presentation string independent of its language
type Kind string

const (
	RecommendRegister         Kind = "recommend_register"
	RecommendTrademarkCheck   Kind = "recommend_trademark_check"
	RecommendSiteDown         Kind = "recommend_site_down"
	RecommendCertificateIssue Kind = "recommend_certificate_issue"
	RecommendSlowResponse     Kind = "recommend_slow_response"
	RecommendLowReputation    Kind = "recommend_low_reputation"
	RecommendAlternatives     Kind = "recommend_alternatives"

	RiskBlacklisted Kind = "risk_blacklisted"
	RiskMalware     Kind = "risk_malware"
	RiskPhishing    Kind = "risk_phishing"
	RiskNoValidSSL  Kind = "risk_no_valid_ssl"
	RiskVerySlow    Kind = "risk_very_slow"

	WhoisStatus      Kind = "whois_status"
	WhoisCreated     Kind = "whois_created"
	WhoisExpires     Kind = "whois_expires"
	WhoisUpdated     Kind = "whois_updated"
	WhoisRegistrar   Kind = "whois_registrar"
	WhoisNameServers Kind = "whois_name_servers"
	WhoisRegistrant  Kind = "whois_registrant"
	WhoisCountry     Kind = "whois_country"
	WhoisNoData      Kind = "whois_no_data"
)

// Catalog maps every message kind to its text in one language
type Catalog map[Kind]string

// Text returns the text for kind, falling back to English and then to the kind itself
func (c Catalog) Text(kind Kind) string {
	if text, ok := c[kind]; ok {
		return text
	}

	if text, ok := English[kind]; ok {
		return text
	}

	return string(kind)
}

// Japanese is the default catalog
var Japanese = Catalog{
	RecommendRegister:         "ドメインは登録可能です",
	RecommendTrademarkCheck:   "登録前に商標の競合をチェックしてください",
	RecommendSiteDown:         "ウェブサイトが応答していません - 一時的にダウンしている可能性があります",
	RecommendCertificateIssue: "SSL証明書の問題が検出されました",
	RecommendSlowResponse:     "レスポンス時間が遅く、ユーザー体験に影響する可能性があります",
	RecommendLowReputation:    "評判スコアが低いため、さらなる調査が必要です",
	RecommendAlternatives:     "代替ドメインの検討をお勧めします",
	RiskBlacklisted:           "ドメインがブラックリストに登録されています",
	RiskMalware:               "マルウェアが検出されました",
	RiskPhishing:              "フィッシングリスクの可能性があります",
	RiskNoValidSSL:            "有効なSSL証明書がありません",
	RiskVerySlow:              "レスポンス時間が非常に遅いです",
	WhoisStatus:               "Status",
	WhoisCreated:              "作成日",
	WhoisExpires:              "有効期限",
	WhoisUpdated:              "最終更新日",
	WhoisRegistrar:            "レジストラ",
	WhoisNameServers:          "ネームサーバー",
	WhoisRegistrant:           "登録者",
	WhoisCountry:              "国",
	WhoisNoData:               "WHOIS情報を取得できませんでした",
}

// English is the fallback catalog
var English = Catalog{
	RecommendRegister:         "The domain is available for registration",
	RecommendTrademarkCheck:   "Check for trademark conflicts before registering",
	RecommendSiteDown:         "The website is not responding - it may be temporarily down",
	RecommendCertificateIssue: "An SSL certificate problem was detected",
	RecommendSlowResponse:     "Response time is slow and may affect user experience",
	RecommendLowReputation:    "The reputation score is low and needs further investigation",
	RecommendAlternatives:     "Consider alternative domains",
	RiskBlacklisted:           "The domain is blacklisted",
	RiskMalware:               "Malware was detected",
	RiskPhishing:              "Possible phishing risk",
	RiskNoValidSSL:            "No valid SSL certificate",
	RiskVerySlow:              "Response time is very slow",
	WhoisStatus:               "Status",
	WhoisCreated:              "Created",
	WhoisExpires:              "Expires",
	WhoisUpdated:              "Last updated",
	WhoisRegistrar:            "Registrar",
	WhoisNameServers:          "Name servers",
	WhoisRegistrant:           "Registrant",
	WhoisCountry:              "Country",
	WhoisNoData:               "No WHOIS information available",
}

// supported lists the catalog languages in matcher preference order
var supported = []language.Tag{
	language.Japanese,
	language.English,
}

var matcher = language.NewMatcher(supported)

// ForLanguage picks the catalog best matching an Accept-Language style preference list.
// Empty or unparsable input selects the Japanese catalog.
func ForLanguage(preference string) Catalog {
	if preference == "" {
		return Japanese
	}

	tags, _, err := language.ParseAcceptLanguage(preference)
	if err != nil || len(tags) == 0 {
		log.Debug().Err(err).Str("language", preference).Msg("unrecognized language preference, using default catalog")
		return Japanese
	}

	_, index, _ := matcher.Match(tags...)
	if supported[index] == language.English {
		return English
	}

	return Japanese
}
