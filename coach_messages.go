package main

// Reason codes emitted by the check-in engine. Persisted on snapshots, so
// renaming one is a data migration.
const (
	reasonAdherenceLow     = "adherence-low"
	reasonWeightDataHold   = "weight_data_insufficient_hold"
	reasonUnknown          = "unknown"
	reasonFatLossOver      = "fatloss-over"
	reasonFatLossOn        = "fatloss-on"
	reasonFatLossUnder     = "fatloss-under"
	reasonFatLossGainedFW  = "fatloss-gained-firstweek"
	reasonFatLossGainedNFW = "fatloss-gained-nonfirstweek"
	reasonFatLossNoChgFW   = "fatloss-noweightchange-firstweek"
	reasonFatLossNoChgNFW  = "fatloss-noweightchange-nonfirstweek"
	reasonGainOver         = "gain-over"
	reasonGainOn           = "gain-on"
	reasonGainUnder        = "gain-under"
	reasonGainLostFW       = "gain-lost-firstweek"
	reasonGainLostNFW      = "gain-lost-nonfirstweek"
	reasonGainNoChgFW      = "gain-noweightchange-firstweek"
	reasonGainNoChgNFW     = "gain-noweightchange-nonfirstweek"
	reasonMinFatCarbCap    = "min-fat-carb-cap"
	reasonMinFatCap        = "min-fat-cap"
	reasonMinCarbCap       = "min-carb-cap"
)

// uiMessageFallback is returned for any goal/reason combination without a
// dedicated coach narrative.
const uiMessageFallback = "Koç notu mevcut değil."

// adherenceLowUIMessage is goal-independent: the gate fires before any goal
// branch runs.
const adherenceLowUIMessage = `Devamlılık başarının anahtarıdır!
Geçen hafta devamlılıkta beklediğimiz düzeyi tam olarak yakalayamadık. İlerlemeyi net bir şekilde takip edebilmek ve doğru değişiklikleri yapabilmek için devamlılık çok önemlidir. Bu hafta makrolarında bir değişiklik yapmıyoruz. Şimdi, plana sadık kalma ve yeniden ritme girme zamanı!`

// coachNarratives maps goal → reason code → the localized coaching note
// shown on the check-in report.
var coachNarratives = map[string]map[string]string{
	goalFatLoss: {
		reasonFatLossOver: `Harika haber! Metabolizman tam gaz çalışıyor!
Bu hafta kilo verdiğini görmek çok güzel.
Fakat kilo vermen beklediğimizden biraz daha hızlı. Bu, vücudunun sürece olumlu yanıt verdiğini gösteriyor. Fakat, bu momentumu koruyarak biraz daha kontrollü ilerlememiz gerekiyor. Bu yüzden makrolarını biraz artırıyoruz. Bu artışa bakalım vücudun nasıl tepki verecek...`,
		reasonFatLossOn: `Süper gidiyorsun!
Bu haftaki kilo kaybın tam olarak istediğimiz düzeyde. Bu ilerleme, planının işe yaradığını gösteriyor. Makro değerlerinde şu an için bir değişiklik yapmıyoruz. Bu olumlu momentumla ilerlemeye devam etmeye çalışacağız. İstikrarlı olmaya devam et, bu şekilde ilerlemeye devam edelim!`,
		reasonFatLossUnder: `Kilo kaybın bu hafta hedefin altında kalmış.
Bu yüzden makrolarında bir azalışa gidiyoruz. Plana sadık kalmaya devam et ve sürece güven.`,
		reasonFatLossGainedFW: `İlk hafta kilonda bir artış oldu.
Fakat endişelenecek bir durum yok. Her şey kontrol altında. Metabolizma hızını tespit etmem 1-2 hafta alabiliyor. Hedef kilo kaybına ulaşmak adına makrolarını tekrar düzenledim. Bakalım vücudun bu makrolara nasıl tepki verecek…`,
		reasonFatLossGainedNFW: `Bu hafta kilonda bir artış var. Hedefte ilerlemek adına makrolarında bir azalışa gidiyoruz. Plana sadık kalmaya devam et...`,
		reasonFatLossNoChgFW: `İlk hafta kilonda bir değişiklik yok.
Fakat endişelenecek bir durum yok. Her şey kontrol altında. Metabolizma hızını tespit etmem 1-2 hafta alabiliyor. Hedef kilo kaybına ulaşmak adına makrolarını tekrar düzenledim. Bakalım vücudun bu makrolara nasıl tepki verecek…`,
		reasonFatLossNoChgNFW: `Bu hafta kilonda bir değişiklik yok. Hedefte ilerlemek için makrolarında bir azalışa gidiyoruz. Mücadeleye devam et...`,
		reasonMinFatCarbCap:   `Makroları azaltabileceğimiz alt sınıra ulaştık. Sağlığını korumak adına makrolarında daha fazla azalışa gidemiyoruz. En yakın zamanda reverse diyete başlanıp metabolizma hızının normal seviyelere çekilmesi gerekiyor.`,
		reasonMinFatCap:       `Mevcut veriler doğrultusunda makrolarda azalışa gittim. Fakat yağ alt sınırına ulaştık. Sağlığını korumak adına bundan sonra yağda daha fazla azalış olmayacak.`,
		reasonMinCarbCap:      `Mevcut veriler doğrultusunda makrolarda azalışa gittim. Fakat karbonhidrat alt sınırına ulaştık. Sağlığını korumak adına bundan sonra karbonhidratta daha fazla azalış olmayacak.`,
	},
	goalWeightGain: {
		reasonGainOver:  `İlerlemen çok iyi! Fakat bu hafta kilo alımın beklediğimizden fazla oldu. Yağ alımını sınırlandırmak adına makrolarda bir düşüşe gidiyoruz. Sürece güvenmeye devam et...`,
		reasonGainOn:    `Harika! Bu hafta kilo artışın tam hedeflediğimiz aralıkta. Makroların aynı kalıyor. Aynı disiplinle devam!`,
		reasonGainUnder: `Kilo alımın hedefin biraz altında. Bu yüzden makrolarında artış yapıyoruz. Mücadeleye devam!`,
		reasonGainLostFW: `İlk hafta kilonda bir azalış var.
Fakat endişelenecek bir durum yok. Her şey kontrol altında. Metabolizma hızını tespit etmem 1-2 hafta alabiliyor. Hedef kilo alımına ulaşmak adına makrolarını tekrar düzenledim. Bakalım vücudun bu makrolara nasıl tepki verecek…`,
		reasonGainLostNFW: `Bu hafta kilonda bir düşüş var. Hedef kilo artışını yakalamak adına makrolarında artışa gidiyoruz. Plana sadık kalmaya devam et...`,
		reasonGainNoChgFW: `İlk hafta kilonda bir değişiklik yok.
Fakat endişelenecek bir durum yok. Her şey kontrol altında. Metabolizma hızını tespit etmem 1-2 hafta alabiliyor. Hedef kilo alımına ulaşmak adına makrolarını tekrar düzenledim. Bakalım vücudun bu makrolara nasıl tepki verecek…`,
		reasonGainNoChgNFW: `Kilonda bir değişim yok. Hedefte ilerlemek adına makrolarında bir artışa gidiyoruz. Plana sadık kalmaya devam et...`,
	},
	goalReverseDiet: {
		reasonGainOver: `İlerlemen çok iyi!
Fakat bu hafta kilo artışı beklediğimizden fazla oldu. Yağ alımını sınırlandırmak adına makrolarda bir düşüşe gidiyoruz. Sürece güvenmeye devam et...`,
		reasonGainOn: `Harika gidiyorsun!
Bu haftaki kilo değişimin tam istediğimiz düzeyde. Makroları sabit tutuyoruz. Aynı disiplinle devam...`,
		reasonGainUnder: `Vücudun reverse diyete iyi tepki veriyor. Metabolizma hızını kademeli yükseltmek için makrolarında bir artışa gittim. Aynı disiplinle devam...`,
		reasonGainLostFW: `İlk hafta makroların artmasına rağmen kilonda bir azalış var. Bu güzel haber.
Metabolizman sürece iyi tepki veriyor. Bu yüzden makrolarında bir artışa gidiyoruz. Aynen bu şekilde aynı disiplinle devam...`,
		reasonGainLostNFW: `Bu hafta kilonda bir azalış var. Makroların artarken kilonun düşmesi mükemmel! Bu hafta makrolarında artışa gidiyoruz. Aynen bu şekilde devam...`,
		reasonGainNoChgFW: `İlk hafta kilonda bir değişiklik yok. Bu süper! Metabolizman sürece iyi tepki veriyor.
Metabolizma hızını adım adım yükseltmek için makrolarını artırdım. Aynı disiplinle devam...`,
		reasonGainNoChgNFW: `Bu hafta kilonda bir değişiklik yok. Tekrar makrolarını artırma zamanı.
Çok iyi gidiyorsun. Aynı sabır ve disiplinle ilerlemeye devam...`,
	},
}

// composeUIMessage looks up the coach narrative for a goal and reason code.
// Unmapped combinations get the generic fallback.
func composeUIMessage(goal, reasonCode string) string {
	if reasonCode == reasonAdherenceLow {
		return adherenceLowUIMessage
	}
	if byCode, ok := coachNarratives[goal]; ok {
		if msg, ok := byCode[reasonCode]; ok {
			return msg
		}
	}
	return uiMessageFallback
}
