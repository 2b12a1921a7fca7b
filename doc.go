// Package keymat implements the IKEv1 Phase-1 key derivation chain defined
// in RFC 2409 §5: SKEYID / SKEYID_d / SKEYID_a / SKEYID_e, Appendix B cipher
// key expansion, and the chained IV state used by all subsequent Phase-1
// and Phase-2 exchanges on an IKE security association.
package keymat
