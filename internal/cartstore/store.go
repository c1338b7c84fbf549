package cartstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"shop/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 1商品あたりの数量上限。超過分は黙って切り捨てる（エラーにしない）。
const MaxQuantity int64 = 100

// カート内の1行。IDはカタログの商品ID。
type Item struct {
	ID       int64              `json:"id"`
	Name     string             `json:"name"`
	Price    decimal.Decimal    `json:"price"`
	Quantity int64              `json:"quantity"`
	Category model.GoodCategory `json:"category"`
	Image    string             `json:"image,omitempty"`
}

// Store は購入前のカート状態の入れ物。
// プロファイルIDで引いたKVから復元してから書く（復元前の書き込みは
// 保存済み状態を空で潰すので、必ず読み→書きの順にする）。
// 同じキーを複数のStoreが同時に書いた場合はlast-write-wins。
type Store struct {
	kv        KV
	profileID string
	log       *slog.Logger

	loaded   bool
	items    []Item
	nickname string
}

func New(kv KV, profileID string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{kv: kv, profileID: profileID, log: log}
}

func (s *Store) itemsKey() string    { return "cart:items:" + s.profileID }
func (s *Store) nicknameKey() string { return "cart:nickname:" + s.profileID }

// 復元。壊れたデータやKV障害は空カート扱い（呼び出し側には伝播させない）。
func (s *Store) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := s.kv.Get(ctx, s.itemsKey())
	switch {
	case err == nil:
		var items []Item
		if jsonErr := json.Unmarshal(data, &items); jsonErr != nil {
			s.log.Warn("cart payload corrupted, starting empty",
				"profile_id", s.profileID, "error", jsonErr)
			s.items = nil
		} else {
			s.items = items
		}
	case err == ErrKeyNotFound:
		s.items = nil
	default:
		s.log.Warn("cart storage unavailable, starting empty",
			"profile_id", s.profileID, "error", err)
		s.items = nil
	}

	nick, err := s.kv.Get(ctx, s.nicknameKey())
	if err == nil {
		s.nickname = string(nick)
	}
}

func (s *Store) persistItems(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.log.Warn("cart marshal failed", "profile_id", s.profileID, "error", err)
		return
	}
	if err := s.kv.Set(ctx, s.itemsKey(), data); err != nil {
		s.log.Warn("cart persist failed", "profile_id", s.profileID, "error", err)
	}
}

// Add は追加（同一商品は数量加算、上限100でクランプ）。
// quantity <= 0 は1として扱う。
func (s *Store) Add(ctx context.Context, item Item, quantity int64) {
	s.ensureLoaded(ctx)

	if quantity <= 0 {
		quantity = 1
	}

	for i := range s.items {
		if s.items[i].ID == item.ID {
			q := s.items[i].Quantity + quantity
			if q > MaxQuantity {
				q = MaxQuantity
			}
			s.items[i].Quantity = q
			s.persistItems(ctx)
			return
		}
	}

	if quantity > MaxQuantity {
		quantity = MaxQuantity
	}
	item.Quantity = quantity
	s.items = append(s.items, item)
	s.persistItems(ctx)
}

// Remove は削除。存在しないIDはno-op。
func (s *Store) Remove(ctx context.Context, id int64) {
	s.ensureLoaded(ctx)

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistItems(ctx)
			return
		}
	}
}

// UpdateQuantity は数量の置き換え。quantity <= 0 は削除と同じ。
func (s *Store) UpdateQuantity(ctx context.Context, id int64, quantity int64) {
	s.ensureLoaded(ctx)

	if quantity <= 0 {
		s.Remove(ctx, id)
		return
	}
	if quantity > MaxQuantity {
		quantity = MaxQuantity
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.persistItems(ctx)
			return
		}
	}
}

// Clear は明細を空にする。ニックネームは残す。
func (s *Store) Clear(ctx context.Context) {
	s.ensureLoaded(ctx)

	s.items = nil
	if err := s.kv.Remove(ctx, s.itemsKey()); err != nil {
		s.log.Warn("cart clear failed", "profile_id", s.profileID, "error", err)
	}
}

// SetNickname は受取キャラ名を保存。空文字で解除。
func (s *Store) SetNickname(ctx context.Context, name string) {
	s.ensureLoaded(ctx)

	s.nickname = name
	if name == "" {
		if err := s.kv.Remove(ctx, s.nicknameKey()); err != nil {
			s.log.Warn("nickname clear failed", "profile_id", s.profileID, "error", err)
		}
		return
	}
	if err := s.kv.Set(ctx, s.nicknameKey(), []byte(name)); err != nil {
		s.log.Warn("nickname persist failed", "profile_id", s.profileID, "error", err)
	}
}

func (s *Store) Nickname(ctx context.Context) string {
	s.ensureLoaded(ctx)
	return s.nickname
}

// Items は明細のコピーを返す。
func (s *Store) Items(ctx context.Context) []Item {
	s.ensureLoaded(ctx)

	cp := make([]Item, len(s.items))
	copy(cp, s.items)
	return cp
}

func (s *Store) TotalItems(ctx context.Context) int64 {
	s.ensureLoaded(ctx)

	var n int64
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice は price×quantity の合計。
// 丸めは合計に対して1回だけ（行ごとに丸めると誤差が積む）。
func (s *Store) TotalPrice(ctx context.Context) decimal.Decimal {
	s.ensureLoaded(ctx)

	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total.Round(2)
}
