package redis

import "context"

// deleteByMask удаляет все ключи по маске SCAN-курсором, возвращает число удалённых
func (c *Client) deleteByMask(ctx context.Context, mask string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := c.Scan(ctx, cursor, mask, 100).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) != 0 {
			n, err := c.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}
