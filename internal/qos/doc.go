// Package qos describes the delivery-quality profile a subscriber requests
// from the middleware: durability, reliability, history and the liveliness
// timing knobs. The checker needs a profile compatible with the topic's
// publisher, otherwise the middleware never delivers and a healthy topic
// looks stuck.
package qos
