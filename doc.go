/*
Package dynup keeps a DNS A record pointed at the caller's current public IP address.

Usage starts with [dynup.New],
which returns a [Client] for a single domain.
New requires a [Provider] option for the DNS backend holding the record -
use [UsingGandi] or [UsingCloudflare].
Each call to [Client.Run] performs one resolve-and-update pass;
scheduling repeated runs is left to the caller (cron, a systemd timer, etc.).
*/
package dynup
