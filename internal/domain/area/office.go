package area

// officeAliases は都道府県名と気象台の管轄名が一致しない例外。
// 北海道・沖縄は管内が分割されているため、県庁所在地を含む
// 代表管轄に寄せる。
var officeAliases = map[Prefecture]string{
	Hokkaido: "石狩・空知・後志地方",
	Okinawa:  "沖縄本島地方",
}

// OfficeAlias は都道府県に対応する管轄の表示名を返す。
func OfficeAlias(p Prefecture) string {
	if alias, ok := officeAliases[p]; ok {
		return alias
	}
	return p.Name()
}

// OfficeFor は管轄名の完全一致でデータセットから管轄を解決する。
func OfficeFor(p Prefecture, d *Dataset) (Office, error) {
	if !p.Valid() {
		return Office{}, ErrOfficeNotFound
	}
	o, ok := d.OfficeByName(OfficeAlias(p))
	if !ok {
		return Office{}, ErrOfficeNotFound
	}
	return o, nil
}
