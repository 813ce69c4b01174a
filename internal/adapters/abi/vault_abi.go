package abi

// VaultEventsABI describes the events emitted by the registry and its vaults
const VaultEventsABI = `[
  {"type":"event","name":"VaultCreated","anonymous":false,"inputs":[
    {"name":"vault","type":"address","indexed":true},
    {"name":"name","type":"string","indexed":false},
    {"name":"members","type":"address[]","indexed":false}]},
  {"type":"event","name":"DepositMade","anonymous":false,"inputs":[
    {"name":"depositor","type":"address","indexed":true},
    {"name":"amount","type":"uint256","indexed":false}]},
  {"type":"event","name":"ProposalCreated","anonymous":false,"inputs":[
    {"name":"proposalId","type":"uint256","indexed":true},
    {"name":"proposalType","type":"uint8","indexed":false},
    {"name":"proposer","type":"address","indexed":true}]},
  {"type":"event","name":"VoteCasted","anonymous":false,"inputs":[
    {"name":"proposalId","type":"uint256","indexed":true},
    {"name":"voter","type":"address","indexed":true},
    {"name":"inFavor","type":"bool","indexed":false}]},
  {"type":"event","name":"ProposalExecuted","anonymous":false,"inputs":[
    {"name":"proposalId","type":"uint256","indexed":true}]},
  {"type":"event","name":"ProposalRejected","anonymous":false,"inputs":[
    {"name":"proposalId","type":"uint256","indexed":true}]},
  {"type":"event","name":"WithdrawalExecuted","anonymous":false,"inputs":[
    {"name":"recipient","type":"address","indexed":true},
    {"name":"amount","type":"uint256","indexed":false}]},
  {"type":"event","name":"MemberAdded","anonymous":false,"inputs":[
    {"name":"newMember","type":"address","indexed":true}]}
]`
