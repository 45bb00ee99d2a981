package classify

// DefaultTypeRules is the shared lure taxonomy. Order matters.
var DefaultTypeRules = []Rule{
	rule(`シンキングペンシル|シンペン|sinking\s*pencil`, "sinking pencil"),
	rule(`ダイビングペンシル|diving\s*pencil`, "diving pencil"),
	rule(`ペンシル|pencil`, "pencil bait"),
	rule(`ポッパー|popper`, "popper"),
	rule(`スイッシャー|プロップベイト|swisher|prop\s*bait`, "prop bait"),
	rule(`フロッグ|frog`, "frog"),
	rule(`ジャークベイト|jerk\s*bait`, "jerkbait"),
	rule(`ミノー|minnow`, "minnow"),
	rule(`シャッド|shad`, "shad"),
	rule(`クランク|crank`, "crankbait"),
	rule(`メタルバイブ|metal\s*vib`, "metal vibration"),
	rule(`バイブレーション|バイブ|vibration|lipless`, "vibration"),
	rule(`スピナーベイト|spinner\s*bait`, "spinnerbait"),
	rule(`バズベイト|buzz\s*bait`, "buzzbait"),
	rule(`チャターベイト|ブレーデッドジグ|chatter\s*bait|bladed\s*jig`, "chatterbait"),
	rule(`スピナー|spinner`, "spinner"),
	rule(`ジグヘッド|jig\s*head`, "jig head"),
	rule(`ラバージグ|rubber\s*jig`, "rubber jig"),
	rule(`エギ|餌木|squid\s*jig`, "egi"),
	rule(`タイラバ|鯛ラバ|tai\s*rubber`, "tai rubber"),
	rule(`メタルジグ|ジグ|metal\s*jig|\bjig\b`, "metal jig"),
	rule(`スプーン|spoon`, "spoon"),
	rule(`ビッグベイト|big\s*bait`, "big bait"),
	rule(`スイムベイト|swim\s*bait`, "swimbait"),
	rule(`ワーム|ソフトベイト|worm|soft\s*bait`, "soft bait"),
	rule(`トップウォーター|topwater`, "topwater"),
}

// DefaultFishRules is the shared species taxonomy. Order matters: seabass
// must be tested before the bare "バス".
var DefaultFishRules = []FishRule{
	fish(`エギ|アオリイカ|イカ|squid|\begi\b`, "squid"),
	fish(`タイラバ|鯛ラバ|真鯛|マダイ|鯛|sea\s*bream`, "sea bream"),
	fish(`タチウオ|太刀魚|hairtail`, "hairtail"),
	fish(`マグロ|ツナ|tuna`, "tuna"),
	fish(`青物|ブリ|ワラサ|ハマチ|ヒラマサ|カンパチ|ショアジギ|オフショアジギ|yellowtail|amberjack`, "yellowtail", "amberjack"),
	fish(`シーバス|スズキ|sea\s*bass`, "seabass"),
	fish(`ヒラメ|マゴチ|フラットフィッシュ|flatfish`, "flatfish"),
	fish(`メバル|メバリング|ロックフィッシュ|根魚|rockfish`, "rockfish"),
	fish(`アジング|アジ用|ajing|horse\s*mackerel`, "horse mackerel"),
	fish(`トラウト|渓流|管理釣り場|trout`, "trout"),
	fish(`ブラックバス|バス|black\s*bass|\bbass\b`, "black bass"),
}
