package matcher

import v9 "github.com/redis/go-redis/v9"

// reserveScript walks the live version of one book side and reserves up to
// need units at prices no worse than limit.
//
// KEYS[1] current version pointer
// ARGV[1] instrument key base, ARGV[2] side, ARGV[3] limit, ARGV[4] need,
// ARGV[5] "1" to walk ascending (asks) or "0" to walk descending (bids)
//
// Returns {version, filled, price1, volume1, ...}; {0, 0} when no snapshot is live.
var reserveScript = v9.NewScript(`
local version = redis.call('GET', KEYS[1])
if not version then
	return {0, 0}
end

local ttl = redis.call('PTTL', KEYS[1])
if ttl <= 0 then
	return {0, 0}
end

local scope = ARGV[1] .. ':' .. ARGV[2] .. ':' .. version
local volumes = scope .. ':vol'
local used = scope .. ':used'
local need = tonumber(ARGV[4])

local prices
if ARGV[5] == '1' then
	prices = redis.call('ZRANGEBYSCORE', scope .. ':idx', '-inf', ARGV[3])
else
	prices = redis.call('ZREVRANGEBYSCORE', scope .. ':idx', '+inf', ARGV[3])
end

local result = {tonumber(version), 0}
local filled = 0
for _, price in ipairs(prices) do
	if need <= 0 then
		break
	end
	local available = tonumber(redis.call('HGET', volumes, price) or '0') - tonumber(redis.call('HGET', used, price) or '0')
	if available > 0 then
		local take = math.min(available, need)
		redis.call('HINCRBY', used, price, take)
		need = need - take
		filled = filled + take
		table.insert(result, price)
		table.insert(result, take)
	end
end

if filled > 0 then
	redis.call('PEXPIRE', used, ttl)
end
result[2] = filled
return result
`)

// releaseScript gives reserved volume back to a version's ledger.
//
// KEYS[1] consumed ledger of the reserved version
// ARGV    price1, volume1, price2, volume2, ...
//
// Returns 1 when the ledger still existed, 0 when the version already expired.
var releaseScript = v9.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
for i = 1, #ARGV, 2 do
	local left = redis.call('HINCRBY', KEYS[1], ARGV[i], -tonumber(ARGV[i + 1]))
	if left <= 0 then
		redis.call('HDEL', KEYS[1], ARGV[i])
	end
end
return 1
`)
